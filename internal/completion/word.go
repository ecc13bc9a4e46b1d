package completion

import (
	"unicode"
	"unicode/utf8"
)

func isWordRune(r rune) bool {
	return r == '_' || r == '.' || r == '$' || r == '`' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CurrentWord returns the token ending at the end of text and the byte
// offset where it starts. A ':' directly before the token is part of it, so
// label completion sees ":Per" rather than "Per".
func CurrentWord(text string) (int, string) {
	start := len(text)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	if start > 0 && text[start-1] == ':' {
		start--
	}
	return start, text[start:]
}

// Apply replaces the current word of text with the text of item. Console
// commands only appear at the start of the input so they replace all of it.
func Apply(text string, item Item) string {
	if item.Type == TypeConsoleCommand {
		return GetText(item) + " "
	}
	start, _ := CurrentWord(text)
	return text[:start] + GetText(item)
}
