package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText decodes artifact bytes as plain text without ever failing.
// Valid UTF-8 passes through; otherwise the bytes are treated as
// Windows-1254, the legacy encoding of older Turkish court exports, and as
// a last resort undecodable sequences are substituted.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	if out, err := charmap.Windows1254.NewDecoder().Bytes(data); err == nil {
		return string(out)
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
