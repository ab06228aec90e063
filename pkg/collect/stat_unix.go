//go:build !windows

package collect

import (
	"os"
	"syscall"
)

// statIdentity extracts the device and inode numbers from a FileInfo.
// ok is false when the underlying data is not a syscall.Stat_t.
func statIdentity(info os.FileInfo) (dev, ino uint64, ok bool) {
	st, isStat := info.Sys().(*syscall.Stat_t)
	if !isStat {
		return 0, 0, false
	}
	return uint64(st.Dev), uint64(st.Ino), true
}
