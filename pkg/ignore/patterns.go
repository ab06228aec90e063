package ignore

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddlePattern      = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern    = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern     = regexp.MustCompile(`^\*\*/`)
	singleStarReplacementPattern = regexp.MustCompile(`\*`)
	directoryEndPattern          = regexp.MustCompile(`/$`)
	rootRelativePattern          = regexp.MustCompile(`^/`)
)

// Placeholder tokens keep '**' expansions out of reach of the single-star
// and '?' conversions; their regex forms contain both characters.
const (
	doubleStarMiddleToken   = "\x00m\x00"
	doubleStarTrailingToken = "\x00t\x00"
	doubleStarLeadingToken  = "\x00l\x00"
)

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	specialChars := `.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns substitutes placeholder tokens for '**' patterns.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, doubleStarMiddleToken)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, doubleStarTrailingToken)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, doubleStarLeadingToken)
	return pattern
}

// wildcardToRegex converts wildcards '*' and '?' to regex equivalents, then
// expands the '**' placeholders.
func wildcardToRegex(pattern string) string {
	pattern = singleStarReplacementPattern.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", ".")
	pattern = strings.ReplaceAll(pattern, doubleStarMiddleToken, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, doubleStarTrailingToken, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, doubleStarLeadingToken, `(.*/)?`)
	return pattern
}

// anchorPattern anchors the regex pattern to match the full path, directly or
// as a parent directory of it.
func anchorPattern(pattern string, originalPattern string) string {
	if directoryEndPattern.MatchString(originalPattern) {
		pattern += "(|.*)$"
	} else {
		pattern += "(|/.*)$"
	}

	if rootRelativePattern.MatchString(originalPattern) {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	return "^(|.*/)" + pattern
}
