package skills

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text and splits it into tokens. A token is a maximal run of letters,
// digits and the characters + # . _ -, with trailing . _ - and leading _ - removed, so "C++",
// "C#", ".NET" and "node.js" stay intact while sentence punctuation does not. A slash separates
// tokens: "Python/Django" yields "python" and "django".
func Tokenize(text string) []string {
	return tokenize(text, false)
}

// compoundTokens returns the slash-joined tokens of text ("ci/cd", "c++/qt") whole, for
// dictionary entries that contain a slash.
func compoundTokens(text string) []string {
	var out []string
	for _, tok := range tokenize(text, true) {
		if strings.Contains(tok, "/") {
			out = append(out, tok)
		}
	}
	return out
}

func tokenize(text string, keepSlash bool) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isTokenRune(r) && !(keepSlash && r == '/')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, "./_-")
		f = strings.TrimLeft(f, "/_-")
		if strings.HasPrefix(f, "..") {
			f = strings.TrimLeft(f, ".")
		}
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isTokenRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '+', '#', '.', '_', '-':
		return true
	}
	return false
}
