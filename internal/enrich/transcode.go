package enrich

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// transcodeDisplay produces the display-safe variant of a free-text field:
// the field is re-encoded to UTF-16LE and the resulting bytes are escaped,
// printable ASCII kept as-is and everything else rendered as \xNN. The
// output embeds safely into the marker popup template whatever the source
// charset mangling looked like. Empty input stays empty.
func transcodeDisplay(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	raw, err := encoder.Bytes([]byte(s))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	var b strings.Builder
	b.Grow(len(raw) * 2)
	for _, c := range raw {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}

	return b.String(), nil
}
