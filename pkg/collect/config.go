// Package collect discovers text-like files under a set of roots and
// concatenates their decoded contents into a single UTF-8 output file.
package collect

import "time"

// Config holds the options for a collection run. It is populated by the CLI
// layer and treated as immutable by the core.
type Config struct {
	Roots            []string // Input files and/or directories, in order.
	Output           string   // Destination path; empty or a directory selects a timestamped default name.
	Tree             string   // Optional destination for a directory tree listing.
	IncludeHidden    bool     // Include hidden files and directories.
	FollowSymlinks   bool     // Follow symbolic links during traversal.
	MaxDepth         int      // Directory levels to descend below a root; negative = unlimited.
	MaxSizeBytes     int64    // Files strictly larger are skipped; <= 0 = unlimited.
	Append           bool     // Append to the destination if it already exists.
	EncodingReport   bool     // Record the encoding used per processed file.
	Workers          int      // Reserved for parallelism; the processing loop is sequential.
	Verbose          bool     // Detailed logging, including skipped-file diagnostics.
	DebugDiscovery   bool     // Print discovered files and exit without writing output.
	ExcludePatterns  []string // Additional exclude patterns supplied on the command line.
	GlobalIgnoreFile string   // Optional path to a global exclude rules file.

	// Now is the clock used for the banner and default file names; nil means
	// time.Now. Overridable for tests.
	Now func() time.Time
}

const (
	// sampleSize is the leading read used for binary classification.
	sampleSize = 8192
	// chunkSize is the read unit for streaming the remainder of a file.
	chunkSize = 65536
	// ignoreFileName is looked up beside each directory root.
	ignoreFileName = ".collectignore"
)

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// unlimitedDepth reports whether traversal depth is unbounded.
func (c *Config) unlimitedDepth() bool {
	return c.MaxDepth < 0
}
