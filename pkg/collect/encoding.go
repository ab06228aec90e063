package collect

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCandidate pairs an encoding with the label recorded for reporting.
type decodeCandidate struct {
	label string
	enc   encoding.Encoding
}

// decodeCandidates is the fixed priority order tried after plain UTF-8 and
// BOM-prefixed UTF-8. The list is immutable configuration; "utf-16" is
// BOM-driven, the -le/-be variants assume their byte order outright.
var decodeCandidates = []decodeCandidate{
	{label: "utf-16", enc: unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)},
	{label: "utf-16-le", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{label: "utf-16-be", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	{label: "latin-1", enc: charmap.ISO8859_1},
	{label: "cp1252", enc: charmap.Windows1252},
}

// tryDecode decodes data with the first candidate encoding that parses
// cleanly and returns the text with the label that succeeded. It never fails
// outward: if no candidate parses (latin-1 accepts any byte string, so this
// is a guard rather than a live path), the data is decoded as UTF-8 with
// lossy replacement under the distinct "utf-8-replace" label.
func tryDecode(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	// A BOM-prefixed input is already valid UTF-8 and taken by the branch
	// above; this candidate stays for parity with the documented list.
	if bytes.HasPrefix(data, utf8BOM) && utf8.Valid(data[len(utf8BOM):]) {
		return string(data[len(utf8BOM):]), "utf-8-sig"
	}

	for _, c := range decodeCandidates {
		if s, ok := decodeWith(c.enc, data); ok {
			return s, c.label
		}
	}

	return string(bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))), "utf-8-replace"
}

// decodeWith decodes data strictly: the x/text decoders substitute U+FFFD for
// malformed input instead of failing, so any replacement rune in the output
// marks the candidate as a failed parse.
func decodeWith(enc encoding.Encoding, data []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	s := string(out)
	if !utf8.ValidString(s) || strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}
