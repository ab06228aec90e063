package collect

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeUTF16 serializes s as UTF-16 with the given byte order, optionally
// prefixed with a byte order mark.
func encodeUTF16(s string, bigEndian, bom bool) []byte {
	units := utf16.Encode([]rune(s))
	if bom {
		units = append([]uint16{0xFEFF}, units...)
	}
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		if bigEndian {
			out = append(out, byte(u>>8), byte(u))
		} else {
			out = append(out, byte(u), byte(u>>8))
		}
	}
	return out
}

func TestTryDecodeUTF8(t *testing.T) {
	text, label := tryDecode([]byte("héllo wörld\n"))
	assert.Equal(t, "héllo wörld\n", text)
	assert.Equal(t, "utf-8", label)
}

func TestTryDecodeUTF8BOM(t *testing.T) {
	// BOM-prefixed content is still valid UTF-8, so the first candidate wins
	// and the BOM survives as U+FEFF.
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	text, label := tryDecode(data)
	assert.Equal(t, "utf-8", label)
	assert.Equal(t, "\uFEFFhello", text)
}

func TestTryDecodeUTF16WithBOM(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		data := encodeUTF16("€ 100", bigEndian, true)
		text, label := tryDecode(data)
		assert.Equal(t, "utf-16", label, "bigEndian=%v", bigEndian)
		assert.Equal(t, "€ 100", text, "BOM must be consumed")
	}
}

func TestTryDecodeUTF16LEWithoutBOM(t *testing.T) {
	data := encodeUTF16("€€€", false, false)
	text, label := tryDecode(data)
	assert.Equal(t, "utf-16-le", label)
	assert.Equal(t, "€€€", text)
}

func TestTryDecodeLatin1(t *testing.T) {
	// Odd length rules out the UTF-16 family; 0xE9 rules out UTF-8.
	data := []byte("caf\xe9!")
	text, label := tryDecode(data)
	assert.Equal(t, "latin-1", label)
	assert.Equal(t, "café!", text)
}

func TestTryDecodeNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0xFF},
		{0xFF, 0xFE, 0xFF},
		{0x00, 0x01, 0x02, 0x03},
	}
	for _, data := range inputs {
		text, label := tryDecode(data)
		require.NotEmpty(t, label)
		_ = text
	}
}

func TestTryDecodeRoundTrip(t *testing.T) {
	// Content representable in the source encoding must come back losslessly
	// after re-encoding to UTF-8.
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "utf-8", data: []byte("líne one\nline two\n"), want: "líne one\nline two\n"},
		{name: "utf-16-le", data: encodeUTF16("цена €100", false, false), want: "цена €100"},
		{name: "latin-1", data: []byte("na\xefve r\xe9sum\xe9!"), want: "naïve résumé!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, _ := tryDecode(tt.data)
			assert.Equal(t, tt.want, text)
		})
	}
}
