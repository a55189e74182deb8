// Package ps2test builds minimal ISO9660 disc images for tests.
package ps2test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const (
	sectorData = 2048
	rawSector  = 2352
	pvdSector  = 16
	rootSector = 18
)

// File is one file placed in the image's root directory.
type File struct {
	Name    string // ISO9660 identifier, e.g. "SYSTEM.CNF;1"
	Content []byte
}

// Options control the generated image.
type Options struct {
	// Raw wraps every sector into a 2352-byte Mode 2 frame with sync pattern.
	Raw bool
	// PadTo extends the image with zero bytes up to this size when larger.
	PadTo int64
}

// SystemCNF returns the usual boot descriptor content for serial.
func SystemCNF(serial string) []byte {
	return []byte("BOOT2 = cdrom0:\\" + serial + ";1\r\nVER = 1.00\r\nVMODE = NTSC\r\n")
}

// Build returns the bytes of an image holding files in its root directory.
func Build(files []File, opts Options) []byte {
	sorted := append([]File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	// Data for each file starts right after the root directory sector.
	nextLBA := uint32(rootSector + 1)
	lbas := make([]uint32, len(sorted))
	for i, f := range sorted {
		lbas[i] = nextLBA
		n := uint32((len(f.Content) + sectorData - 1) / sectorData)
		if n == 0 {
			n = 1
		}
		nextLBA += n
	}
	totalSectors := nextLBA

	cooked := make([]byte, int(totalSectors)*sectorData)

	pvd := cooked[pvdSector*sectorData:]
	pvd[0] = 0x01
	copy(pvd[1:6], "CD001")
	pvd[6] = 0x01
	copy(pvd[8:40], padded("PLAYSTATION", 32))
	copy(pvd[40:72], padded("TEST", 32))
	binary.LittleEndian.PutUint32(pvd[80:84], totalSectors)
	binary.BigEndian.PutUint32(pvd[84:88], totalSectors)
	binary.LittleEndian.PutUint16(pvd[128:130], sectorData)
	binary.BigEndian.PutUint16(pvd[130:132], sectorData)
	copy(pvd[156:190], dirRecord("\x00", rootSector, sectorData, true))

	term := cooked[(pvdSector+1)*sectorData:]
	term[0] = 0xFF
	copy(term[1:6], "CD001")
	term[6] = 0x01

	root := cooked[rootSector*sectorData : (rootSector+1)*sectorData]
	offset := 0
	offset += copy(root[offset:], dirRecord("\x00", rootSector, sectorData, true))
	offset += copy(root[offset:], dirRecord("\x01", rootSector, sectorData, true))
	for i, f := range sorted {
		offset += copy(root[offset:], dirRecord(f.Name, lbas[i], uint32(len(f.Content)), false))
		copy(cooked[int(lbas[i])*sectorData:], f.Content)
	}

	image := cooked
	if opts.Raw {
		image = make([]byte, int(totalSectors)*rawSector)
		for s := 0; s < int(totalSectors); s++ {
			frame := image[s*rawSector:]
			frame[0] = 0x00
			for i := 1; i < 11; i++ {
				frame[i] = 0xFF
			}
			frame[11] = 0x00
			frame[15] = 0x02
			copy(frame[24:24+sectorData], cooked[s*sectorData:(s+1)*sectorData])
		}
	}

	if opts.PadTo > int64(len(image)) {
		image = append(image, make([]byte, opts.PadTo-int64(len(image)))...)
	}
	return image
}

// WriteImage writes an image with a SYSTEM.CNF naming serial into dir and returns its path.
func WriteImage(t testing.TB, dir, name, serial string, opts Options) string {
	t.Helper()
	files := []File{{Name: "SYSTEM.CNF;1", Content: SystemCNF(serial)}}
	return WriteFiles(t, dir, name, files, opts)
}

// WriteFiles writes an image holding files into dir and returns its path.
func WriteFiles(t testing.TB, dir, name string, files []File, opts Options) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(files, opts), 0o644); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}
	return path
}

func dirRecord(name string, lba, size uint32, dir bool) []byte {
	length := 33 + len(name)
	if length%2 != 0 {
		length++
	}
	record := make([]byte, length)
	record[0] = byte(length)
	binary.LittleEndian.PutUint32(record[2:6], lba)
	binary.BigEndian.PutUint32(record[6:10], lba)
	binary.LittleEndian.PutUint32(record[10:14], size)
	binary.BigEndian.PutUint32(record[14:18], size)
	if dir {
		record[25] = 0x02
	}
	binary.LittleEndian.PutUint16(record[28:30], 1)
	binary.BigEndian.PutUint16(record[30:32], 1)
	record[32] = byte(len(name))
	copy(record[33:], name)
	return record
}

func padded(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}
