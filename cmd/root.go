package cmd

import (
	"textgrab/pkg/collect"
	"textgrab/pkg/logging"
	"textgrab/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	output         string
	tree           string
	depth          int
	includeHidden  bool
	followSymlinks bool
	maxSizeMB      float64
	appendOut      bool
	encodingReport bool
	workers        int
	verbose        bool
	debugDiscovery bool
	exclude        []string
	ignoreFile     string
}

var baseLogger *zap.Logger

// RootCmd is the base command; running it performs a collection.
var RootCmd = &cobra.Command{
	Use:   "textgrab [flags] <path>...",
	Short: "Textgrab collects textual files into a single output file",
	Long: `Textgrab walks the given files and directories, skips binary-like and
oversized files, decodes common text encodings, and concatenates the results
into one UTF-8 output file with a header before each file.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := baseLogger
		if built, err := logging.Setup(flags.verbose, "Textgrab", version.Version); err == nil {
			logger = built
		}
		defer logger.Sync()

		cfg := &collect.Config{
			Roots:            args,
			Output:           flags.output,
			Tree:             flags.tree,
			IncludeHidden:    flags.includeHidden,
			FollowSymlinks:   flags.followSymlinks,
			MaxDepth:         flags.depth,
			MaxSizeBytes:     maxSizeBytes(flags.maxSizeMB),
			Append:           flags.appendOut,
			EncodingReport:   flags.encodingReport,
			Workers:          flags.workers,
			Verbose:          flags.verbose,
			DebugDiscovery:   flags.debugDiscovery,
			ExcludePatterns:  flags.exclude,
			GlobalIgnoreFile: flags.ignoreFile,
		}
		return collect.Execute(cfg, logger)
	},
}

func init() {
	RootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path; a directory selects a timestamped default name inside it")
	RootCmd.Flags().StringVar(&flags.tree, "tree", "", "Also write a directory tree listing to this path")
	RootCmd.Flags().IntVar(&flags.depth, "depth", -1, "How many directory levels to descend (negative = unlimited)")
	RootCmd.Flags().BoolVar(&flags.includeHidden, "include-hidden", false, "Include hidden files and directories")
	RootCmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "Follow symbolic links")
	RootCmd.Flags().Float64Var(&flags.maxSizeMB, "max-size", 200.0, "Maximum file size in MB to read (<= 0 = unlimited)")
	RootCmd.Flags().BoolVar(&flags.appendOut, "append", false, "Append to the output file if it exists")
	RootCmd.Flags().BoolVar(&flags.encodingReport, "encoding-report", false, "Report the encoding used for each file (best-effort)")
	RootCmd.Flags().IntVar(&flags.workers, "workers", 1, "Reserved for parallelism (1 = sequential)")
	RootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose logging")
	RootCmd.Flags().BoolVar(&flags.debugDiscovery, "debug-discovery", false, "Print discovered files and exit without writing output")
	RootCmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "Exclude pattern (gitignore syntax, repeatable)")
	RootCmd.Flags().StringVar(&flags.ignoreFile, "ignore-file", "", "Path to a global exclude rules file")
}

// Execute runs the root command with the given base logger.
func Execute(logger *zap.Logger) error {
	baseLogger = logger
	return RootCmd.Execute()
}

// maxSizeBytes converts the MB flag to bytes; non-positive means unlimited.
func maxSizeBytes(mb float64) int64 {
	if mb <= 0 {
		return 0
	}
	return int64(mb * 1024 * 1024)
}
