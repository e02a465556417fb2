package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerLead lower-cases the first letter of a sentence that is being
// prefixed or joined, leaving "I", I-contractions and acronyms alone
// Placeholders start with an underscore and are never affected.
func lowerLead(s string) string {
	first := s
	if i := strings.IndexAny(s, " \t\n,;:"); i >= 0 {
		first = s[:i]
	}
	if first == "I" || strings.HasPrefix(first, "I'") || strings.HasPrefix(first, "I’") || isAcronym(first) {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

// matchCase carries the capitalization of the matched text over to its replacement
func matchCase(matched, replacement string) string {
	r, _ := utf8.DecodeRuneInString(matched)
	if unicode.IsUpper(r) {
		return upperFirst(replacement)
	}
	return replacement
}

// startsCapitalized reports whether s begins with an upper-case letter
func startsCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
