// Package common provides common utilities for CD-ROM operations.
// This file contains ISO9660 identifier and sector helpers.
package common

import "strings"

// ISO9660 logical block size used by every supported image layout
const SectorDataSize = 2048

// GetSizeInSectors calculates the number of sectors needed for a given size in bytes
func GetSizeInSectors(sizeBytes uint32) uint32 {
	return uint32((uint64(sizeBytes) + SectorDataSize - 1) / SectorDataSize)
}

// CleanFileName removes version numbers from ISO9660 file names
func CleanFileName(fileName string) string {
	// Remove version numbers (e.g., "FILE.EXT;1" -> "FILE.EXT")
	if idx := strings.Index(fileName, ";"); idx != -1 {
		fileName = fileName[:idx]
	}
	// Files without extension are recorded as "NAME."
	return strings.TrimSuffix(fileName, ".")
}
