//go:build !windows

package collect

import "path/filepath"

// isHidden reports whether the entry at path is hidden. On unix this is the
// dot-prefix convention on the final path component.
func isHidden(path string) bool {
	name := filepath.Base(path)
	return len(name) > 0 && name[0] == '.' && name != "." && name != ".."
}
