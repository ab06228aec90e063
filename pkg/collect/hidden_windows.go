//go:build windows

package collect

import (
	"path/filepath"
	"syscall"
)

// isHidden reports whether the entry at path is hidden: the dot-prefix
// convention, or the FILE_ATTRIBUTE_HIDDEN attribute. Attribute lookup
// failures count as not hidden.
func isHidden(path string) bool {
	name := filepath.Base(path)
	if len(name) > 0 && name[0] == '.' && name != "." && name != ".." {
		return true
	}

	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&syscall.FILE_ATTRIBUTE_HIDDEN != 0
}
