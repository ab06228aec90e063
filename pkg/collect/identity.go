package collect

import (
	"os"
	"path/filepath"
)

// identityKey is the dedup and loop-detection token for a filesystem entry.
// It is either a (device, inode) pair, or a resolved absolute path on
// platforms and filesystems where those numbers are absent or reported as
// zero. Zero dev+ino would otherwise collapse every entry into one false
// collision.
type identityKey struct {
	kind string // "inode" or "path"
	dev  uint64
	ino  uint64
	path string
}

// identityFor computes the identity key for path. When followSymlinks is set
// the key describes the link target, otherwise the link itself. Stat failures
// are treated as metadata-unavailable and fall back to the path key; the
// function has no side effects; the caller owns the seen-set.
func identityFor(path string, followSymlinks bool) identityKey {
	var info os.FileInfo
	var err error
	if followSymlinks {
		info, err = os.Stat(path)
	} else {
		info, err = os.Lstat(path)
	}

	if err == nil {
		if dev, ino, ok := statIdentity(info); ok && !(dev == 0 && ino == 0) {
			return identityKey{kind: "inode", dev: dev, ino: ino}
		}
	}

	if resolved, rerr := filepath.EvalSymlinks(path); rerr == nil {
		if abs, aerr := filepath.Abs(resolved); aerr == nil {
			return identityKey{kind: "path", path: abs}
		}
	}
	if abs, aerr := filepath.Abs(path); aerr == nil {
		return identityKey{kind: "path", path: abs}
	}
	return identityKey{kind: "path", path: path}
}
