package pkg

import "fmt"

const crcPolynomial = 0x04C11DB7

// crcTable is filled once; index order is reversed so lookups run LSB-first.
var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var table [256]uint32
	for i := 0; i < 256; i++ {
		crc := uint32(i) << 24
		for bit := 0; bit < 8; bit++ {
			if crc&0x80000000 != 0 {
				crc <<= 1
			} else {
				crc = (crc << 1) ^ crcPolynomial
			}
		}
		table[255-i] = crc
	}
	return table
}

// NameHash returns the tag the loader derives from a game name to find its fragments.
// The name is hashed with a trailing null byte, as the loader stores it.
func NameHash(name string) string {
	var crc uint32
	data := append([]byte(name), 0x00)

	for _, b := range data {
		index := b ^ byte(crc>>24)
		crc = crcTable[index] ^ (crc << 8)
	}

	return fmt.Sprintf("%08X", crc)
}
