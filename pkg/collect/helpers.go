package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// humanSize renders a byte count with a binary-scaled unit suffix.
func humanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f%s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1fPB", size)
}

// expandUser replaces a leading ~ with the current user's home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolvePath returns the best-available canonical absolute form of path,
// resolving symlinks when possible.
func resolvePath(path string) string {
	p := path
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return p
}
