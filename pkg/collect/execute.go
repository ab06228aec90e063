package collect

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"textgrab/pkg/ignore"
	"textgrab/pkg/progress"

	"go.uber.org/zap"
)

// Execute runs a full collection: discovery over cfg.Roots, ingestion into
// the resolved output file, and a human summary on stdout. Per-file failures
// are counted and skipped; the returned error is reserved for fatal
// conditions (unusable exclude rules, unwritable destination). An empty
// result set is a clean no-op, not an error.
func Execute(cfg *Config, logger *zap.Logger) error {
	runCfg := *cfg
	runCfg.Roots = normalizeRoots(cfg.Roots)

	if cfg.Workers > 1 {
		logger.Info("Parallel workers are reserved; processing sequentially",
			zap.Int("workers", cfg.Workers))
	}

	matcher, err := loadExcludeRules(&runCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load exclude rules: %w", err)
	}

	if cfg.DebugDiscovery {
		fmt.Println("Running discovery in debug mode...")
		for p := range Discover(&runCfg, matcher, logger) {
			fmt.Println(" WOULD-PROCESS:", p)
		}
		fmt.Println("Debug discovery finished.")
		return nil
	}

	outPath, err := resolveOutputPath(cfg.Output, runCfg.now())
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	appendMode := cfg.Append && fileExists(outPath)

	// Discovery is drained fully before processing so the progress reporter
	// gets an exact total; entries are re-checked since they can vanish
	// between enumeration and processing.
	var files []string
	for p := range Discover(&runCfg, matcher, logger) {
		if info, serr := os.Stat(p); serr == nil && info.Mode().IsRegular() {
			files = append(files, p)
		}
	}

	// Self-inclusion guard: never ingest the file being written.
	absOut := resolvePath(outPath)
	kept := files[:0]
	for _, p := range files {
		if resolvePath(p) != absOut {
			kept = append(kept, p)
		}
	}
	files = kept

	if len(files) == 0 {
		logger.Info("No files found to process")
		fmt.Println("No files found to process. Exiting.")
		return nil
	}

	if cfg.Tree != "" {
		if err := writeTreeFile(cfg.Tree, runCfg.Roots, &runCfg, matcher, logger); err != nil {
			return fmt.Errorf("failed to write tree structure: %w", err)
		}
	}

	if err := ensureDirectory(filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	outFile, err := os.OpenFile(outPath, flags, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open output file %s for writing: %w", outPath, err)
	}

	writer := bufio.NewWriter(outFile)
	if !appendMode {
		fmt.Fprintf(writer, "# Collected files output generated on %s\n",
			runCfg.now().Format("2006-01-02 15:04:05"))
	}

	reporter := progress.New(len(files), "Collecting files")
	stats := ProcessFiles(files, writer, cfg, reporter, logger)
	reporter.Finish()

	if err := writer.Flush(); err != nil {
		outFile.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Info("Collection complete",
		zap.String("outputFile", outPath),
		zap.Int("discovered", stats.Discovered),
		zap.Int("processed", stats.Processed),
		zap.Int("skippedBinary", stats.SkippedBinary),
		zap.Int("skippedLarge", stats.SkippedLarge),
		zap.Int("errors", stats.Errors))

	printSummary(os.Stdout, outPath, stats, cfg)
	return nil
}

// normalizeRoots expands and absolutizes the input paths, warning about ones
// that do not exist; discovery skips those without failing the run.
func normalizeRoots(roots []string) []string {
	normalized := make([]string, 0, len(roots))
	for _, r := range roots {
		p := expandUser(r)
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if !fileExists(p) {
			fmt.Fprintf(os.Stderr, "Warning: input %s does not exist and will be skipped.\n", p)
		}
		normalized = append(normalized, p)
	}
	return normalized
}

// loadExcludeRules assembles the run's exclude ruleset from the global rules
// file (flag or COLLECTIGNORE_GLOBAL), a .collectignore beside each directory
// root, and command-line patterns. Returns nil when no rules are configured.
func loadExcludeRules(cfg *Config, logger *zap.Logger) (Matcher, error) {
	globalPath := cfg.GlobalIgnoreFile
	if globalPath == "" {
		globalPath = os.Getenv("COLLECTIGNORE_GLOBAL")
	}

	var localPaths []string
	for _, r := range cfg.Roots {
		if info, err := os.Stat(r); err == nil && info.IsDir() {
			localPaths = append(localPaths, filepath.Join(r, ignoreFileName))
		}
	}

	rules, err := ignore.Load(globalPath, localPaths, cfg.ExcludePatterns, logger)
	if err != nil {
		return nil, err
	}
	if rules.Len() == 0 {
		return nil, nil
	}
	logger.Debug("Loaded exclude rules", zap.Int("patternCount", rules.Len()))
	return rules, nil
}

// resolveOutputPath applies the destination defaulting convention: an empty
// path selects a timestamped file in the working directory, a directory path
// a timestamped file inside it.
func resolveOutputPath(output string, now time.Time) (string, error) {
	if output == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, defaultOutputName(now)), nil
	}

	out := expandUser(output)
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, defaultOutputName(now)), nil
	}
	return out, nil
}

func defaultOutputName(now time.Time) string {
	return "collected_files_" + now.Format("20060102_150405") + ".txt"
}

// printSummary renders the end-of-run report in the tool's plain console
// format.
func printSummary(w io.Writer, outPath string, stats *Stats, cfg *Config) {
	fmt.Fprintln(w, "\n\nSummary:")
	fmt.Fprintf(w, "  Files discovered: %d\n", stats.Discovered)
	fmt.Fprintf(w, "  Files processed:  %d\n", stats.Processed)
	if stats.SkippedBinary > 0 {
		fmt.Fprintf(w, "  Skipped (binary-like): %d\n", stats.SkippedBinary)
	}
	if stats.SkippedLarge > 0 {
		fmt.Fprintf(w, "  Skipped (too large): %d\n", stats.SkippedLarge)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(w, "  Errors: %d\n", stats.Errors)
	}
	if info, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "  Output file: %s  (size: %s)\n", outPath, humanSize(info.Size()))
	} else {
		fmt.Fprintf(w, "  Output file: %s\n", outPath)
	}

	if cfg.EncodingReport && len(stats.Encodings) > 0 {
		fmt.Fprintln(w, "\nEncodings detected (sample):")
		paths := make([]string, 0, len(stats.Encodings))
		for p := range stats.Encodings {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		shown := 0
		for _, p := range paths {
			if shown == 10 {
				break
			}
			fmt.Fprintf(w, "  %s -> %s\n", p, stats.Encodings[p])
			shown++
		}
		if len(stats.Encodings) > shown {
			fmt.Fprintf(w, "  ... and %d more\n", len(stats.Encodings)-shown)
		}
	}

	fmt.Fprintln(w, "\nDone.")
}
