//go:build windows

package collect

import "os"

// statIdentity reports no identity numbers on Windows; os.FileInfo does not
// expose file index data there, and several filesystems return zeros anyway.
// Callers fall back to resolved-path keys.
func statIdentity(info os.FileInfo) (dev, ino uint64, ok bool) {
	return 0, 0, false
}
