package collect

import "bytes"

// classifySample inspects at most the first 1024 bytes.
const classifySample = 1024

// nonTextThreshold is the fraction of disallowed bytes above which a sample
// is considered binary.
const nonTextThreshold = 0.30

// looksBinary classifies a byte sample as binary-like. Any null byte in the
// inspected prefix decides binary; otherwise the sample is binary when more
// than 30% of its bytes fall outside the allowed set (bytes >= 0x20 plus
// bell, backspace, tab, newline, form feed, carriage return, escape). Empty
// samples are text. Pure function of the prefix, no I/O.
func looksBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	if len(sample) > classifySample {
		sample = sample[:classifySample]
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if !isTextByte(b) {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > nonTextThreshold
}

// isTextByte reports whether b belongs to the allowed set for text content.
// High bytes are allowed; legacy single-byte encodings use them freely.
func isTextByte(b byte) bool {
	if b >= 0x20 {
		return true
	}
	switch b {
	case 7, 8, '\t', '\n', 12, '\r', 27:
		return true
	}
	return false
}
