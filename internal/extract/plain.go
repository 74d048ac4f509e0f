package extract

import (
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\ufeff"

// extractPlain returns content as a string without a leading byte order mark.
// Invalid UTF-8 sequences are replaced with the replacement character.
func extractPlain(content []byte) (string, error) {
	s := string(content)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\ufffd")
	}
	return strings.TrimPrefix(s, utf8BOM), nil
}
