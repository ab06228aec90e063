package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// GenerateTree renders a connector-style directory listing of the given
// roots, honoring the same hidden-filter, exclude rules, and depth bound the
// discovery engine applies. Directories at the bound are listed by name but
// not descended into. Unreadable subtrees are logged and omitted.
func GenerateTree(roots []string, cfg *Config, rules Matcher, logger *zap.Logger) (string, error) {
	var treeBuilder strings.Builder

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			logger.Warn("Cannot stat path for tree listing", zap.String("path", root), zap.Error(err))
			continue
		}

		if info.IsDir() {
			treeBuilder.WriteString(root + "/\n")
			subtree, err := treeLevel(root, root, cfg, rules, "", 0, logger)
			if err != nil {
				logger.Warn("Failed to build subtree", zap.String("directory", root), zap.Error(err))
				continue
			}
			if subtree != "" {
				treeBuilder.WriteString(subtree)
				treeBuilder.WriteString("\n")
			}
		} else {
			treeBuilder.WriteString(filepath.Base(root) + "\n")
		}
	}

	return treeBuilder.String(), nil
}

// treeLevel builds one indentation level of the listing. depth is the level
// of directory relative to root, starting at zero.
func treeLevel(directory, root string, cfg *Config, rules Matcher, prefix string, depth int, logger *zap.Logger) (string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %q: %w", directory, err)
	}

	// Filter before computing connectors so the last visible entry gets the
	// closing corner.
	var visible []os.DirEntry
	for _, entry := range entries {
		p := filepath.Join(directory, entry.Name())
		if !cfg.IncludeHidden && isHidden(p) {
			continue
		}
		if rules != nil {
			if rel, rerr := filepath.Rel(root, p); rerr == nil && rules.MatchesPath(rel) {
				continue
			}
		}
		visible = append(visible, entry)
	}

	// Directories first, then files, alphabetically.
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].IsDir() != visible[j].IsDir() {
			return visible[i].IsDir()
		}
		return strings.ToLower(visible[i].Name()) < strings.ToLower(visible[j].Name())
	})

	var output []string
	for i, entry := range visible {
		connector := "├── "
		extension := "│   "
		if i == len(visible)-1 {
			connector = "└── "
			extension = "    "
		}

		entryPath := filepath.Join(directory, entry.Name())
		if entry.IsDir() {
			output = append(output, prefix+connector+entry.Name()+"/")
			if !cfg.unlimitedDepth() && depth+1 > cfg.MaxDepth {
				continue
			}
			subtree, err := treeLevel(entryPath, root, cfg, rules, prefix+extension, depth+1, logger)
			if err != nil {
				logger.Warn("Failed to build subtree", zap.String("directory", entryPath), zap.Error(err))
				continue
			}
			if subtree != "" {
				output = append(output, subtree)
			}
		} else {
			output = append(output, prefix+connector+entry.Name())
		}
	}

	return strings.Join(output, "\n"), nil
}

// writeTreeFile renders the tree listing and writes it to path.
func writeTreeFile(path string, roots []string, cfg *Config, rules Matcher, logger *zap.Logger) error {
	content, err := GenerateTree(roots, cfg, rules, logger)
	if err != nil {
		return err
	}
	if err := ensureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	logger.Debug("Wrote tree listing", zap.String("path", path))
	return nil
}
