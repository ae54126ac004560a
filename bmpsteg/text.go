package bmpsteg

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// TextEncoding selects how text messages map to bytes.
type TextEncoding int

const (
	// EncodingCodepoint keeps the low 8 bits of each character's code
	// point. Non-Latin-1 text is silently truncated. Bytes that are not
	// valid UTF-8 are kept as they are.
	EncodingCodepoint TextEncoding = iota

	// EncodingUTF8 stores the NFC-normalized UTF-8 bytes of the text.
	EncodingUTF8
)

func (e TextEncoding) String() string {
	switch e {
	case EncodingCodepoint:
		return "codepoint"
	case EncodingUTF8:
		return "utf8"
	default:
		return fmt.Sprintf("TextEncoding(%d)", int(e))
	}
}

// ParseTextEncoding parses "codepoint" or "utf8" (case-insensitive;
// "utf-8" and "latin1" are accepted as aliases).
func ParseTextEncoding(s string) (TextEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "codepoint", "latin1", "":
		return EncodingCodepoint, nil
	case "utf8", "utf-8":
		return EncodingUTF8, nil
	default:
		return 0, fmt.Errorf("unknown text encoding %q", s)
	}
}

// EncodeText maps s to message bytes.
func EncodeText(s string, enc TextEncoding) []byte {
	if enc == EncodingUTF8 {
		return norm.NFC.Bytes([]byte(s))
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			// Not UTF-8: keep the raw byte instead of U+FFFD's 0xFD.
			out = append(out, s[i])
		} else {
			out = append(out, byte(r))
		}
		i += size
	}
	return out
}

// DecodeText maps message bytes back to text.
func DecodeText(b []byte, enc TextEncoding) string {
	if enc == EncodingUTF8 {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
