package collect

import (
	"iter"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Matcher decides whether a root-relative path is excluded from discovery.
type Matcher interface {
	MatchesPath(path string) bool
}

// frame is one unit of pending traversal work: a directory and its depth
// below the root (0 = the root's direct children).
type frame struct {
	dir   string
	depth int
}

// Discover walks cfg.Roots and yields paths of qualifying regular files,
// lazily, each exactly once per run. The traversal is iterative (explicit
// stack, depth-first, unspecified sibling order), bounded by cfg.MaxDepth,
// and loop-safe: every entry's identity key is recorded in a run-scoped
// seen-set before any filtering decision, so symlink cycles terminate even
// through hidden or excluded entries. Roots that are regular files are
// yielded directly, bypassing hidden filtering, exclude rules, and dedup.
// Missing roots and unreadable directories are logged and skipped.
func Discover(cfg *Config, rules Matcher, logger *zap.Logger) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[identityKey]struct{})

		for _, root := range cfg.Roots {
			info, err := os.Stat(root)
			if err != nil {
				logger.Warn("Skipping missing or unreadable root", zap.String("root", root), zap.Error(err))
				continue
			}

			if !info.IsDir() {
				if info.Mode().IsRegular() {
					if !yield(root) {
						return
					}
				}
				continue
			}

			stack := []frame{{dir: root, depth: 0}}
			for len(stack) > 0 {
				fr := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if !cfg.IncludeHidden && isHidden(fr.dir) {
					logger.Debug("Skipping hidden directory", zap.String("dir", fr.dir))
					continue
				}

				entries, err := os.ReadDir(fr.dir)
				if err != nil {
					logger.Warn("Cannot enumerate directory", zap.String("dir", fr.dir), zap.Error(err))
					continue
				}

				for _, entry := range entries {
					p := filepath.Join(fr.dir, entry.Name())

					// Identity is recorded before the hidden and exclude
					// decisions so a filtered symlinked loop target still
					// counts as seen; first occurrence wins.
					key := identityFor(p, cfg.FollowSymlinks)
					if _, dup := seen[key]; dup {
						logger.Debug("Skipping already-seen entry", zap.String("path", p))
						continue
					}
					seen[key] = struct{}{}

					if !cfg.IncludeHidden && isHidden(p) {
						logger.Debug("Skipping hidden entry", zap.String("path", p))
						continue
					}
					if rules != nil {
						if rel, rerr := filepath.Rel(root, p); rerr == nil && rules.MatchesPath(rel) {
							logger.Debug("Skipping excluded entry", zap.String("path", p))
							continue
						}
					}

					isFile, isDir := entryKind(p, entry, cfg.FollowSymlinks)
					switch {
					case isFile:
						if !yield(p) {
							return
						}
					case isDir:
						// Directories beyond the depth bound are pruned, not
						// errors.
						if cfg.unlimitedDepth() || fr.depth+1 <= cfg.MaxDepth {
							stack = append(stack, frame{dir: p, depth: fr.depth + 1})
						}
					}
				}
			}
		}
	}
}

// entryKind resolves whether the entry is a regular file or a directory under
// the symlink-follow policy. Broken links and special files are neither.
func entryKind(path string, entry os.DirEntry, followSymlinks bool) (isFile, isDir bool) {
	t := entry.Type()
	if t&os.ModeSymlink == 0 {
		return t.IsRegular(), t.IsDir()
	}
	if !followSymlinks {
		return false, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return info.Mode().IsRegular(), info.IsDir()
}
