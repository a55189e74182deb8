//go:build windows

package common

import (
	"golang.org/x/sys/windows"
)

// AvailableSpace returns the bytes available to the calling user on the volume holding path.
func AvailableSpace(path string) (uint64, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, NewError(KindInvalidInput, "statfs", path, err)
	}

	var free, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
		return 0, NewError(KindIO, "statfs", path, err)
	}
	return free, nil
}
