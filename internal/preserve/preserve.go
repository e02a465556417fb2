// Package preserve finds terms that must survive rewriting verbatim and
// shields them behind opaque placeholders while the text is transformed.
package preserve

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/humanizer/internal/lexicon"
	"github.com/ppiankov/humanizer/internal/util"
)

var (
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,10}\b`)
	sentenceEnd    = regexp.MustCompile(`[.!?]$`)
	nonTermChars   = regexp.MustCompile(`[^\w-]`)
)

const (
	minTermLength    = 3
	minAcronymLength = 2
	maxAcronymLength = 10
)

// Preserver extracts protected terms using the lexicon's domain patterns
type Preserver struct {
	domain []*regexp.Regexp
}

// New creates a Preserver over the lexicon's domain patterns
func New(lex *lexicon.Lexicon) *Preserver {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Preserver{domain: lex.DomainPatterns}
}

// Extract returns the terms in text that should not be rewritten:
// capitalized words that do not start a sentence, words of domain phrases
// (named algorithms, degrees, institutions, units, methodologies) and acronyms.
// The result is deduplicated case-insensitively and sorted.
func (p *Preserver) Extract(text string) []string {
	set := newTermSet()

	words := util.Words(text)
	for i, word := range words {
		raw := nonWordOnly(word)
		if len(raw) < minTermLength || !startsUpper(raw) {
			continue
		}
		if i == 0 || sentenceEnd.MatchString(words[i-1]) {
			continue
		}
		set.add(raw)
	}

	for _, re := range p.domain {
		for _, match := range re.FindAllString(text, -1) {
			for _, word := range strings.Fields(match) {
				clean := nonTermChars.ReplaceAllString(word, "")
				if len(clean) >= minTermLength {
					set.add(clean)
				}
			}
		}
	}

	for _, acronym := range acronymPattern.FindAllString(text, -1) {
		if len(acronym) >= minAcronymLength && len(acronym) <= maxAcronymLength {
			set.add(acronym)
		}
	}

	return set.sorted()
}

// Merge unions term lists with the same case-insensitive dedupe as Extract
func Merge(lists ...[]string) []string {
	set := newTermSet()
	for _, list := range lists {
		for _, term := range list {
			set.add(term)
		}
	}
	return set.sorted()
}

type termSet struct {
	forms map[string]string
}

func newTermSet() *termSet {
	return &termSet{forms: make(map[string]string)}
}

// add keeps the first surface form seen for each lower-cased term
func (s *termSet) add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	key := strings.ToLower(term)
	if _, ok := s.forms[key]; !ok {
		s.forms[key] = term
	}
}

func (s *termSet) sorted() []string {
	keys := make([]string, 0, len(s.forms))
	for k := range s.forms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = s.forms[k]
	}
	return out
}

// nonWordOnly strips characters outside [A-Za-z0-9_] without changing case
func nonWordOnly(word string) string {
	var b strings.Builder
	for _, r := range word {
		if r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func startsUpper(word string) bool {
	return word != "" && word[0] >= 'A' && word[0] <= 'Z'
}
