package pkg

import "io"

// ul.cfg record layout. Every record is exactly RecordSize bytes.
const (
	RecordSize = 64

	RecordNameStart   = 0
	RecordNameEnd     = 32
	RecordPrefixStart = 32
	RecordPrefixEnd   = 35
	RecordSerialStart = 35
	RecordSerialEnd   = 47
	RecordChunksAt    = 47
	RecordMediaAt     = 48
	RecordMagicAt     = 53

	MaxNameSize   = RecordNameEnd - RecordNameStart     // 32
	MaxSerialSize = RecordSerialEnd - RecordSerialStart // 12

	RecordPrefix = "ul."
	MediaDVD     = 0x14 // Media type byte written for every game
	RecordMagic  = 0x08 // USBExtreme format magic
)

// Fragment naming and sizing
const (
	FragmentPrefix      = "ul"
	FragmentSegments    = 5
	DefaultFragmentSize = 1_073_741_824 // 1 GiB
	MaxFragments        = 10            // single decimal digit index
	CatalogFileName     = "ul.cfg"
)

// CatalogRecord is the decoded content of one ul.cfg record
type CatalogRecord struct {
	Name   string // Display name shown by the loader
	Serial string // Disc serial, e.g. SLUS_200.62
	Chunks uint8  // Number of fragment files
}

// Chunk is one file holding game data: the source image or one of its fragments
type Chunk interface {
	Serial() (string, error)
	Size() (uint64, error)
	Path() string
}

// RecordDecoder defines methods for decoding ul.cfg content
type RecordDecoder interface {
	Decode(reader io.Reader) ([]CatalogRecord, error)
	DecodeRecord(buffer []byte) (*CatalogRecord, error)
}

// RecordEncoder defines methods for encoding ul.cfg content
type RecordEncoder interface {
	Encode(writer io.Writer, records []CatalogRecord) error
	EncodeRecord(record *CatalogRecord) ([]byte, error)
}

// CatalogExporter renders catalog listings
type CatalogExporter interface {
	ExportTable(writer io.Writer, games []*Game) error
	ExportYAML(writer io.Writer, games []*Game) error
}
