package util

import (
	"regexp"
	"strings"
)

var (
	sentenceTerminators = regexp.MustCompile(`[.!?]+`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
	nonWordChars        = regexp.MustCompile(`[^\w]`)

	// A terminator run only ends a sentence when whitespace or the end of
	// text follows it, so decimals and version numbers stay whole
	sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Sentence is one sentence with its terminator kept apart
type Sentence struct {
	Body  string // Trimmed text without the terminator
	Punct string // Terminator run, empty for a trailing fragment
}

// SplitSentences splits text into sentences, keeping terminators
// Sentences with an empty body are dropped.
func SplitSentences(text string) []Sentence {
	var out []Sentence
	prev := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		body := strings.TrimSpace(text[prev:loc[0]])
		punct := strings.TrimSpace(text[loc[0]:loc[1]])
		if body != "" {
			out = append(out, Sentence{Body: body, Punct: punct})
		}
		prev = loc[1]
	}
	if tail := strings.TrimSpace(text[prev:]); tail != "" {
		out = append(out, Sentence{Body: tail})
	}
	return out
}

// JoinSentences joins sentences with single spaces
func JoinSentences(ss []Sentence) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.Body + s.Punct
	}
	return strings.Join(parts, " ")
}

// Sentences splits text on every run of . ! ? and returns the trimmed,
// non-empty pieces; this is the split used for scoring and counting
func Sentences(text string) []string {
	parts := sentenceTerminators.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Words splits text on whitespace runs
// Leading or trailing whitespace produces an empty token, which callers count as a word
func Words(text string) []string {
	return whitespaceRun.Split(text, -1)
}

// WordsWithSpacing splits text into alternating word and whitespace tokens
// The first token is a word (possibly empty when text starts with whitespace)
func WordsWithSpacing(text string) []string {
	locs := whitespaceRun.FindAllStringIndex(text, -1)
	out := make([]string, 0, len(locs)*2+1)
	prev := 0
	for _, loc := range locs {
		out = append(out, text[prev:loc[0]], text[loc[0]:loc[1]])
		prev = loc[1]
	}
	return append(out, text[prev:])
}

// CleanWord lower-cases a token and strips everything but ASCII word characters
func CleanWord(word string) string {
	return nonWordChars.ReplaceAllString(strings.ToLower(word), "")
}

// NormalizeSpace collapses whitespace runs to single spaces and trims the ends
func NormalizeSpace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
