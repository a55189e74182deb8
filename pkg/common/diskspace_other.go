//go:build !(linux || darwin || freebsd || dragonfly || windows)

package common

import (
	"fmt"
	"runtime"
)

// AvailableSpace is not implemented on this platform.
func AvailableSpace(path string) (uint64, error) {
	return 0, NewError(KindIO, "statfs", path, fmt.Errorf("free space query unsupported on %s", runtime.GOOS))
}
