//go:build linux || darwin || freebsd || dragonfly

package common

import (
	"golang.org/x/sys/unix"
)

// AvailableSpace returns the bytes available to an unprivileged user on the filesystem holding path.
func AvailableSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, NewError(KindIO, "statfs", path, err)
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
