// Package ps2 provides PlayStation 2 disc image inspection.
// This file contains sector layouts and ISO9660 structures for disc images.
package ps2

// Sector size constants for PlayStation CD/DVD images
const (
	CD_SECTOR_SIZE  = 2352 // Full raw CD sector size
	CD_DATA_SIZE    = 2048 // User data per sector
	CD_SYNC_SIZE    = 12   // Sync pattern size
	CD_HEADER_SIZE  = 4    // Header size (3 address bytes + 1 mode byte)
	CD_SUBHEAD_SIZE = 8    // XA subheader size (Mode 2 only)

	// Primary Volume Descriptor location
	PVD_SECTOR = 16
)

// CDSyncPattern opens every raw CD sector
var CDSyncPattern = [CD_SYNC_SIZE]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// SectorLayout describes where the 2048 bytes of user data sit inside each stored sector.
type SectorLayout struct {
	Name       string
	Size       int64 // Stored sector size
	DataOffset int   // Offset of user data within a stored sector
}

// Supported layouts. PS2 DVD images are always cooked; CD titles may be raw dumps.
var (
	LayoutISO   = SectorLayout{Name: "iso", Size: CD_DATA_SIZE, DataOffset: 0}
	LayoutMode1 = SectorLayout{Name: "mode1", Size: CD_SECTOR_SIZE, DataOffset: CD_SYNC_SIZE + CD_HEADER_SIZE}
	LayoutMode2 = SectorLayout{Name: "mode2", Size: CD_SECTOR_SIZE, DataOffset: CD_SYNC_SIZE + CD_HEADER_SIZE + CD_SUBHEAD_SIZE}
)

// ISODescriptor holds the Primary Volume Descriptor fields the reader needs
type ISODescriptor struct {
	Type             byte     // Volume descriptor type
	ID               [5]byte  // Standard identifier "CD001"
	Version          byte     // Volume descriptor version
	SystemID         [32]byte // System identifier ("PLAYSTATION")
	VolumeID         [32]byte // Volume identifier
	VolumeSpaceSize  uint32   // Volume space size in logical blocks
	LogicalBlockSize uint16   // Logical block size
	RootDirRecord    [34]byte // Directory entry for root directory
}

// CDFileEntry represents a file or directory record read from the image
type CDFileEntry struct {
	Name       string // File name without version suffix
	LBA        uint32 // Logical Block Address
	Size       uint32 // File size in bytes
	IsDir      bool   // Whether this is a directory
	ExtentSize uint32 // Size in sectors
}
