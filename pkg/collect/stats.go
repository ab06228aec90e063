package collect

// Stats accumulates outcome counters for a single run. All counters are
// monotonically non-decreasing and mutated only by the ingestion loop; the
// snapshot is read-only once the run completes.
type Stats struct {
	Discovered    int // Files the discovery phase handed to the pipeline.
	Processed     int // Files whose content reached the output.
	SkippedBinary int // Files classified binary by the sample heuristic.
	SkippedLarge  int // Files over the configured size limit.
	Errors        int // Files abandoned due to read or write failures.

	// Encodings maps processed file paths (slash form) to the encoding label
	// recorded for them. Populated only when Config.EncodingReport is set.
	Encodings map[string]string
}

// NewStats returns a zeroed Stats ready for a run.
func NewStats() *Stats {
	return &Stats{Encodings: make(map[string]string)}
}
