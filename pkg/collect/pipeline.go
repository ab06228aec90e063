package collect

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"textgrab/pkg/progress"

	"go.uber.org/zap"
)

// ProcessFiles runs the ingestion loop over an already-materialized, ordered
// file list: size gate, binary sniff on a leading sample, framed write of the
// decoded content. Files are processed strictly sequentially; a failure in
// one file is counted and never aborts the rest of the run. The bytes written
// to w are always valid UTF-8 regardless of source encodings.
func ProcessFiles(files []string, w io.Writer, cfg *Config, rep progress.Reporter, logger *zap.Logger) *Stats {
	stats := NewStats()
	stats.Discovered = len(files)

	for _, path := range files {
		processOne(path, w, cfg, stats, logger)
		rep.Advance(1)
	}
	return stats
}

// processOne ingests a single file, updating exactly one outcome counter.
func processOne(path string, w io.Writer, cfg *Config, stats *Stats, logger *zap.Logger) {
	// Oversized files are never opened; a failed stat is not a skip reason,
	// the open below will surface a real error if there is one.
	if info, err := os.Stat(path); err == nil && cfg.MaxSizeBytes > 0 && info.Size() > cfg.MaxSizeBytes {
		stats.SkippedLarge++
		if cfg.Verbose {
			logger.Info("Skipped file over size limit",
				zap.String("path", path),
				zap.String("size", humanSize(info.Size())))
		}
		return
	}

	f, err := os.Open(path)
	if err != nil {
		stats.Errors++
		if cfg.Verbose {
			logger.Warn("Cannot open file", zap.String("path", path), zap.Error(err))
		}
		return
	}
	defer f.Close()

	sample := make([]byte, sampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		stats.Errors++
		if cfg.Verbose {
			logger.Warn("Cannot read file sample", zap.String("path", path), zap.Error(err))
		}
		return
	}
	sample = sample[:n]

	if looksBinary(sample) {
		stats.SkippedBinary++
		if cfg.Verbose {
			logger.Info("Skipped binary-like file", zap.String("path", path))
		}
		return
	}

	if _, err := io.WriteString(w, "\n\n----\n"+path+"\n"); err != nil {
		stats.Errors++
		logger.Warn("Failed to write framing header", zap.String("path", path), zap.Error(err))
		return
	}

	// The sample is decoded and written first, then the remainder streams in
	// fixed-size chunks, each decoded independently. Malformed files may
	// legitimately resolve to different encodings chunk to chunk; the last
	// chunk's label is the one reported.
	encodingUsed := "unknown"
	if len(sample) > 0 {
		text, enc := tryDecode(sample)
		encodingUsed = enc
		if _, err := io.WriteString(w, text); err != nil {
			stats.Errors++
			logger.Warn("Failed to write file content", zap.String("path", path), zap.Error(err))
			return
		}
	}

	buf := make([]byte, chunkSize)
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			text, enc := tryDecode(buf[:n])
			encodingUsed = enc
			if _, werr := io.WriteString(w, text); werr != nil {
				stats.Errors++
				logger.Warn("Failed to write file content", zap.String("path", path), zap.Error(werr))
				return
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			stats.Errors++
			if cfg.Verbose {
				logger.Warn("Read failed mid-file", zap.String("path", path), zap.Error(rerr))
			}
			return
		}
	}

	stats.Processed++
	if cfg.EncodingReport {
		stats.Encodings[filepath.ToSlash(path)] = encodingUsed
	}
}
