package collect

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"textgrab/pkg/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func runPipeline(t *testing.T, files []string, cfg *Config) (*Stats, string) {
	t.Helper()
	var sink bytes.Buffer
	stats := ProcessFiles(files, &sink, cfg, progress.Nop(), zaptest.NewLogger(t))
	return stats, sink.String()
}

func TestProcessFilesFramesTextContent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	stats, out := runPipeline(t, []string{path}, &Config{})
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, "\n\n----\n"+path+"\nhello", out)
}

func TestProcessFilesSkipsBinary(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "b.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02}, 0o644))

	stats, out := runPipeline(t, []string{path}, &Config{})
	assert.Equal(t, 1, stats.SkippedBinary)
	assert.Zero(t, stats.Processed)
	assert.Empty(t, out, "no bytes from a binary file reach the sink")
}

func TestProcessFilesSizeGate(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "big.txt")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 101), 0o644))

	stats, out := runPipeline(t, []string{path}, &Config{MaxSizeBytes: 100})
	assert.Equal(t, 1, stats.SkippedLarge)
	assert.Zero(t, stats.Processed)
	assert.Empty(t, out)

	// At exactly the limit the file is processed.
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 100), 0o644))
	stats, _ = runPipeline(t, []string{path}, &Config{MaxSizeBytes: 100})
	assert.Equal(t, 1, stats.Processed)
	assert.Zero(t, stats.SkippedLarge)
}

func TestProcessFilesErrorIsolation(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o644))
	missing := filepath.Join(root, "gone.txt")

	stats, out := runPipeline(t, []string{missing, good}, &Config{})
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.Processed, "a failing file must not abort the run")
	assert.Contains(t, out, "\nok")
}

func TestProcessFilesReencodesToUTF8(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "latin.txt")
	require.NoError(t, os.WriteFile(path, []byte("caf\xe9!"), 0o644))

	cfg := &Config{EncodingReport: true}
	stats, out := runPipeline(t, []string{path}, cfg)
	assert.Equal(t, 1, stats.Processed)
	assert.Contains(t, out, "café!")
	assert.Equal(t, "latin-1", stats.Encodings[filepath.ToSlash(path)])
}

func TestProcessFilesEncodingReportOptIn(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	stats, _ := runPipeline(t, []string{path}, &Config{})
	assert.Empty(t, stats.Encodings)

	stats, _ = runPipeline(t, []string{path}, &Config{EncodingReport: true})
	assert.Equal(t, "utf-8", stats.Encodings[filepath.ToSlash(path)])
}

func TestProcessFilesStreamsLargeContent(t *testing.T) {
	// Content larger than the sample plus one chunk exercises the streaming
	// path; the output must be the exact concatenation.
	root := t.TempDir()
	path := filepath.Join(root, "long.txt")
	var content strings.Builder
	for i := 0; content.Len() < sampleSize+chunkSize+1000; i++ {
		fmt.Fprintf(&content, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(content.String()), 0o644))

	stats, out := runPipeline(t, []string{path}, &Config{})
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, "\n\n----\n"+path+"\n"+content.String(), out)
}

func TestDiscoveryPipelineEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.bin"), []byte{0x00, 0x01, 0x02}, 0o644))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	cfg := &Config{Roots: []string{root}, MaxDepth: -1, FollowSymlinks: true}
	var files []string
	for p := range Discover(cfg, nil, zaptest.NewLogger(t)) {
		files = append(files, p)
	}
	require.Len(t, files, 2)

	stats, out := runPipeline(t, files, cfg)
	assert.Equal(t, 2, stats.Discovered)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.SkippedBinary)
	assert.Zero(t, stats.Errors)

	assert.Equal(t, 1, strings.Count(out, "----"), "exactly one framed block")
	assert.Contains(t, out, "a.txt\nhello")
	assert.NotContains(t, out, "b.bin")
}
