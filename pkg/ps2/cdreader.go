// Package ps2 provides PlayStation 2 disc image inspection.
// Directory parsing follows mkpsxiso's dumpsxiso, extended to cooked 2048-byte images.
package ps2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hansbonini/ulmake/pkg/common"
)

// CDReader reads ISO9660 structures from a disc image file
type CDReader struct {
	file          *os.File
	layout        SectorLayout
	totalSectors  int64
	currentSector int64
	currentOffset int
	sectorBuffer  []byte
}

// NewCDReader opens filename and detects its sector layout
func NewCDReader(filename string) (*CDReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	layout, err := detectLayout(file, fileInfo.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	common.LogDebug(common.DebugSectorLayout, filename, layout.Size, layout.DataOffset)

	return &CDReader{
		file:          file,
		layout:        layout,
		totalSectors:  fileInfo.Size() / layout.Size,
		currentSector: -1,
		sectorBuffer:  make([]byte, layout.Size),
	}, nil
}

// detectLayout treats images starting with the CD sync pattern as raw dumps
func detectLayout(r io.ReaderAt, size int64) (SectorLayout, error) {
	if size%CD_SECTOR_SIZE != 0 || size < CD_SECTOR_SIZE {
		return LayoutISO, nil
	}

	header := make([]byte, CD_SYNC_SIZE+CD_HEADER_SIZE)
	if _, err := r.ReadAt(header, 0); err != nil {
		return SectorLayout{}, err
	}
	if !bytes.Equal(header[:CD_SYNC_SIZE], CDSyncPattern[:]) {
		return LayoutISO, nil
	}

	if header[CD_SYNC_SIZE+3] == 1 {
		return LayoutMode1, nil
	}
	return LayoutMode2, nil
}

func (r *CDReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Layout returns the detected sector layout
func (r *CDReader) Layout() SectorLayout {
	return r.layout
}

// SeekToSector loads sector lba into the sector buffer
func (r *CDReader) SeekToSector(lba int64) error {
	if lba >= r.totalSectors || lba < 0 {
		return fmt.Errorf("LBA %d out of bounds (total: %d)", lba, r.totalSectors)
	}

	offset := lba * r.layout.Size
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	if _, err := io.ReadFull(r.file, r.sectorBuffer); err != nil {
		return err
	}

	r.currentSector = lba
	r.currentOffset = 0
	return nil
}

// ReadBytes reads user data from the current position, crossing sector boundaries
func (r *CDReader) ReadBytes(buffer []byte) (int, error) {
	bytesRead := 0
	dataStart := r.layout.DataOffset

	for bytesRead < len(buffer) {
		if r.currentOffset >= CD_DATA_SIZE {
			if err := r.SeekToSector(r.currentSector + 1); err != nil {
				return bytesRead, err
			}
		}

		available := CD_DATA_SIZE - r.currentOffset
		toCopy := len(buffer) - bytesRead
		if toCopy > available {
			toCopy = available
		}

		copy(buffer[bytesRead:], r.sectorBuffer[dataStart+r.currentOffset:dataStart+r.currentOffset+toCopy])
		bytesRead += toCopy
		r.currentOffset += toCopy
	}

	return bytesRead, nil
}

// ValidateISO9660 - Check if file has valid ISO9660 header
func (r *CDReader) ValidateISO9660() error {
	if err := r.SeekToSector(PVD_SECTOR); err != nil {
		return err
	}

	header := make([]byte, 7)
	if _, err := r.ReadBytes(header); err != nil {
		return err
	}

	// Check for ISO9660 signature: 0x01 + "CD001" + 0x01
	expected := []byte{0x01, 0x43, 0x44, 0x30, 0x30, 0x31, 0x01}
	for i, b := range expected {
		if header[i] != b {
			return fmt.Errorf("invalid ISO9660 signature at byte %d: got 0x%02X, expected 0x%02X", i, header[i], b)
		}
	}

	return nil
}

// ReadISODescriptor reads the Primary Volume Descriptor
func (r *CDReader) ReadISODescriptor() (*ISODescriptor, error) {
	if err := r.ValidateISO9660(); err != nil {
		return nil, err
	}
	if err := r.SeekToSector(PVD_SECTOR); err != nil {
		return nil, err
	}

	data := make([]byte, CD_DATA_SIZE)
	if _, err := r.ReadBytes(data); err != nil {
		return nil, err
	}

	descriptor := &ISODescriptor{}
	descriptor.Type = data[0]
	copy(descriptor.ID[:], data[1:6])
	descriptor.Version = data[6]
	copy(descriptor.SystemID[:], data[8:40])
	copy(descriptor.VolumeID[:], data[40:72])
	descriptor.VolumeSpaceSize = binary.LittleEndian.Uint32(data[80:84])
	descriptor.LogicalBlockSize = binary.LittleEndian.Uint16(data[128:130])
	copy(descriptor.RootDirRecord[:], data[156:190])

	if descriptor.LogicalBlockSize != 0 && descriptor.LogicalBlockSize != CD_DATA_SIZE {
		return nil, fmt.Errorf("unsupported logical block size %d", descriptor.LogicalBlockSize)
	}

	return descriptor, nil
}

// RootDirectory parses the root directory record held by the descriptor
func (r *CDReader) RootDirectory(descriptor *ISODescriptor) (CDFileEntry, error) {
	entry, err := r.parseEntryData(descriptor.RootDirRecord[:])
	if err != nil {
		return CDFileEntry{}, fmt.Errorf("invalid root directory record: %w", err)
	}
	if !entry.IsDir {
		return CDFileEntry{}, fmt.Errorf("root directory record is not a directory")
	}
	return entry, nil
}

// ParseDirectoryEntries parses directory entries based on mkpsxiso ReadDirEntries implementation
func (r *CDReader) ParseDirectoryEntries(lba int64, sizeInBytes uint32) ([]CDFileEntry, error) {
	var entries []CDFileEntry
	sizeInSectors := common.GetSizeInSectors(sizeInBytes)
	numEntries := 0 // Track entries to skip . and ..

	for sector := uint32(0); sector < sizeInSectors; sector++ {
		if err := r.SeekToSector(lba + int64(sector)); err != nil {
			return nil, fmt.Errorf("failed to seek to sector %d: %w", lba+int64(sector), err)
		}

		for {
			entry, entrySize, err := r.readDirectoryEntry()
			if err != nil {
				// End of sector or invalid entry
				break
			}

			// Skip first two entries (. and ..) - following mkpsxiso pattern
			if numEntries >= 2 {
				if r.isValidEntry(entry) {
					common.LogDebug(common.DebugDirectoryEntry, entry.Name, entry.LBA, entry.Size, entry.IsDir)
					entries = append(entries, entry)
				} else {
					common.LogDebug(common.WarnSkippingEntry, entry.Name)
				}
			}
			numEntries++

			r.currentOffset += entrySize
			if r.currentOffset >= CD_DATA_SIZE {
				break
			}
		}
	}

	return entries, nil
}

// FindFile resolves an absolute slash-separated path such as "/SYSTEM.CNF".
// Names are matched case-insensitively without their version suffix.
func (r *CDReader) FindFile(path string) (CDFileEntry, bool, error) {
	descriptor, err := r.ReadISODescriptor()
	if err != nil {
		return CDFileEntry{}, false, err
	}

	current, err := r.RootDirectory(descriptor)
	if err != nil {
		return CDFileEntry{}, false, err
	}

	parts := strings.FieldsFunc(path, func(c rune) bool { return c == '/' || c == '\\' })
	for i, part := range parts {
		if !current.IsDir {
			return CDFileEntry{}, false, nil
		}

		entries, err := r.ParseDirectoryEntries(int64(current.LBA), current.Size)
		if err != nil {
			return CDFileEntry{}, false, err
		}

		found := false
		for _, entry := range entries {
			if strings.EqualFold(entry.Name, part) {
				current = entry
				found = true
				break
			}
		}
		if !found {
			return CDFileEntry{}, false, nil
		}
		if i == len(parts)-1 && current.IsDir {
			return CDFileEntry{}, false, nil
		}
	}

	return current, len(parts) > 0, nil
}

// ReadFile reads the whole content of a file entry, refusing files above maxSize
func (r *CDReader) ReadFile(entry CDFileEntry, maxSize uint32) ([]byte, error) {
	if entry.Size > maxSize {
		return nil, fmt.Errorf("file %s is %d bytes, limit is %d", entry.Name, entry.Size, maxSize)
	}
	if entry.Size == 0 {
		return []byte{}, nil
	}

	if err := r.SeekToSector(int64(entry.LBA)); err != nil {
		return nil, fmt.Errorf("failed to seek to LBA %d: %w", entry.LBA, err)
	}

	buffer := make([]byte, entry.Size)
	if _, err := r.ReadBytes(buffer); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", entry.Name, err)
	}
	return buffer, nil
}

// Read single directory entry based on mkpsxiso ReadEntry
func (r *CDReader) readDirectoryEntry() (CDFileEntry, int, error) {
	if r.currentOffset >= CD_DATA_SIZE {
		return CDFileEntry{}, 0, fmt.Errorf("end of sector")
	}

	dataStart := r.layout.DataOffset
	entryLength := int(r.sectorBuffer[dataStart+r.currentOffset])

	if entryLength == 0 {
		return CDFileEntry{}, 0, fmt.Errorf("end of directory entries")
	}

	if entryLength < 33 {
		return CDFileEntry{}, 0, fmt.Errorf("entry too short")
	}

	if r.currentOffset+entryLength > CD_DATA_SIZE {
		return CDFileEntry{}, 0, fmt.Errorf("entry exceeds sector bounds")
	}

	entryData := r.sectorBuffer[dataStart+r.currentOffset : dataStart+r.currentOffset+entryLength]

	entry, err := r.parseEntryData(entryData)
	if err != nil {
		return CDFileEntry{}, entryLength, err
	}

	return entry, entryLength, nil
}

func (r *CDReader) parseEntryData(data []byte) (CDFileEntry, error) {
	if len(data) < 33 {
		return CDFileEntry{}, fmt.Errorf("insufficient data")
	}

	// Parse directory entry structure - based on ISO9660 DIR_ENTRY
	length := data[0]
	lbaLE := binary.LittleEndian.Uint32(data[2:6])
	sizeLE := binary.LittleEndian.Uint32(data[10:14])
	flags := data[25]
	filenameLength := data[32]

	if 33+int(filenameLength) > int(length) || 33+int(filenameLength) > len(data) {
		return CDFileEntry{}, fmt.Errorf("filename exceeds entry bounds")
	}

	filename := string(data[33 : 33+filenameLength])
	switch {
	case filename == "\x00":
		filename = "."
	case filename == "\x01":
		filename = ".."
	default:
		filename = common.CleanFileName(filename)
	}

	return CDFileEntry{
		Name:       filename,
		LBA:        lbaLE,
		Size:       sizeLE,
		IsDir:      (flags & 0x02) != 0,
		ExtentSize: common.GetSizeInSectors(sizeLE),
	}, nil
}

// Validate entry using mkpsxiso-style validation
func (r *CDReader) isValidEntry(entry CDFileEntry) bool {
	if entry.Name == "." || entry.Name == ".." {
		return false
	}

	// Empty files may legitimately point at LBA 0
	if entry.Size > 0 && (entry.LBA == 0 || int64(entry.LBA) >= r.totalSectors) {
		return false
	}

	return r.isValidFilename(entry.Name)
}

// Enhanced filename validation based on mkpsxiso behavior
func (r *CDReader) isValidFilename(name string) bool {
	if len(name) == 0 {
		return false
	}

	if strings.Contains(name, "\x00") {
		return false
	}

	if !utf8.ValidString(name) {
		return false
	}

	// Allow some non-printable characters but not excessive amounts
	nonPrintableCount := 0
	for _, c := range name {
		if !unicode.IsPrint(c) && c != '\t' {
			nonPrintableCount++
		}
	}
	return nonPrintableCount <= len(name)/2
}
