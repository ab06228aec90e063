// Package ignore compiles gitignore-style exclude rules and matches them
// against slash-separated relative paths.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type Pattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Original pattern line.
	LineNo  int            // Line number in the source (1-based).
}

// Ruleset represents a collection of exclude patterns.
type Ruleset struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New initializes a Ruleset with an optional logger.
func New(logger *zap.Logger) *Ruleset {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ruleset{
		patterns: []*Pattern{},
		logger:   logger,
	}
}

// Load builds a Ruleset from an optional global rules file, any local rules
// files, and literal pattern lines, in that order (later rules win on
// negation). Missing files are skipped silently.
func Load(globalPath string, localPaths []string, lines []string, logger *zap.Logger) (*Ruleset, error) {
	rs := New(logger)

	if globalPath != "" {
		if err := rs.CompileFile(globalPath); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	for _, p := range localPaths {
		if err := rs.CompileFile(p); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	rs.CompileLines(lines...)

	return rs, nil
}

// Len reports the number of compiled patterns.
func (rs *Ruleset) Len() int {
	return len(rs.patterns)
}

// CompileLines compiles a set of pattern lines and adds them to the Ruleset.
func (rs *Ruleset) CompileLines(lines ...string) {
	for i, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern != nil {
			rs.patterns = append(rs.patterns, &Pattern{
				Pattern: pattern,
				Negate:  negate,
				Line:    line,
				LineNo:  len(rs.patterns) + i + 1, // 1-based line numbering.
			})
		}
	}
}

// CompileFile reads a rules file, parses its lines, and adds them to the Ruleset.
func (rs *Ruleset) CompileFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		if !os.IsNotExist(err) {
			rs.logger.Warn("Failed to read exclude rules file", zap.String("filePath", fpath), zap.Error(err))
		}
		return err
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		pattern, negate := parsePatternLine(line)
		if pattern != nil {
			rs.patterns = append(rs.patterns, &Pattern{
				Pattern: pattern,
				Negate:  negate,
				Line:    line,
				LineNo:  i + 1,
			})
		}
	}
	rs.logger.Debug("Compiled exclude rules", zap.String("filePath", fpath), zap.Int("lineCount", len(lines)))
	return nil
}

// MatchesPath checks if a path matches any of the exclude patterns.
func (rs *Ruleset) MatchesPath(path string) bool {
	matches, _ := rs.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern checks if a path matches any exclude pattern and
// returns the last pattern that decided the outcome.
func (rs *Ruleset) MatchesPathWithPattern(path string) (bool, *Pattern) {
	normalizedPath := filepath.ToSlash(path)

	var matchedPattern *Pattern
	matches := false

	for _, pattern := range rs.patterns {
		if pattern.Pattern.MatchString(normalizedPath) {
			matchedPattern = pattern
			if pattern.Negate {
				matches = false
			} else {
				matches = true
			}
		}
	}

	return matches, matchedPattern
}

// parsePatternLine processes a line from a rules file into a compiled regex
// and a negation flag. Returns nil for empty lines and comments.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmedLine := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Handle escaped leading `#` and `!`.
	if strings.HasPrefix(trimmedLine, "\\#") || strings.HasPrefix(trimmedLine, "\\!") {
		trimmedLine = trimmedLine[1:]
	}

	escapedLine := escapeSpecialChars(trimmedLine)
	escapedLine = handleDoubleStarPatterns(escapedLine)
	escapedLine = wildcardToRegex(escapedLine)
	escapedLine = anchorPattern(escapedLine, trimmedLine)

	compiledRegex, err := regexp.Compile(escapedLine)
	if err != nil {
		return nil, false
	}

	return compiledRegex, negate
}
