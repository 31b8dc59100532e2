package pdfbridge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DecodeTitle converts a raw PDF string into a display title.
//
// Titles with a UTF-16BE byte order mark are decoded as UTF-16, valid
// UTF-8 is passed through, and everything else falls back to a
// byte-wise Windows-1252 decode. Bytes with no mapping in the fallback
// encoding are substituted with an escaped form (`\x9d`) instead of
// failing, so even a garbled title stays usable in listings. The result
// is trimmed of surrounding whitespace.
func DecodeTitle(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xfe && raw[1] == 0xff {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil {
			return strings.TrimSpace(string(out))
		}
	}
	if utf8.Valid(raw) {
		return strings.TrimSpace(strings.TrimPrefix(string(raw), "\ufeff"))
	}

	var sb strings.Builder
	for _, b := range raw {
		r := charmap.Windows1252.DecodeByte(b)
		if r == utf8.RuneError {
			fmt.Fprintf(&sb, `\x%02x`, b)
		} else {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
