package preserve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/humanizer/internal/lexicon"
)

const placeholderTag = "HZP"

// Placeholders maps the opaque tokens inserted by Protect back to the
// exact surface forms they replaced
type Placeholders struct {
	fence   string // Underscore run around every token, longer than any run in the input
	forms   []string
	pattern *regexp.Regexp
}

// Protect replaces every whole-word, case-insensitive occurrence of terms
// with a placeholder. Longer terms win over shorter ones they contain, and
// each distinct surface form gets its own placeholder so Restore puts back
// exactly what was there.
func Protect(text string, terms []string) (string, *Placeholders) {
	ph := &Placeholders{fence: fenceFor(text)}
	ph.pattern = regexp.MustCompile(regexp.QuoteMeta(ph.fence+placeholderTag) + `(\d+)` + regexp.QuoteMeta(ph.fence))

	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			cleaned = append(cleaned, term)
		}
	}
	re := lexicon.Alternation(cleaned)
	if re == nil {
		return text, ph
	}

	index := make(map[string]int)
	protected := re.ReplaceAllStringFunc(text, func(match string) string {
		n, ok := index[match]
		if !ok {
			n = len(ph.forms)
			index[match] = n
			ph.forms = append(ph.forms, match)
		}
		return ph.token(n)
	})
	return protected, ph
}

// Restore puts every original surface form back
func (ph *Placeholders) Restore(text string) string {
	if ph == nil || len(ph.forms) == 0 {
		return text
	}
	return ph.pattern.ReplaceAllStringFunc(text, func(token string) string {
		m := ph.pattern.FindStringSubmatch(token)
		n, err := strconv.Atoi(m[1])
		if err != nil || n >= len(ph.forms) {
			return token
		}
		return ph.forms[n]
	})
}

// Leaked reports whether text still contains a placeholder
func (ph *Placeholders) Leaked(text string) bool {
	if ph == nil || len(ph.forms) == 0 {
		return false
	}
	return ph.pattern.MatchString(text)
}

// Len returns the number of distinct protected surface forms
func (ph *Placeholders) Len() int {
	if ph == nil {
		return 0
	}
	return len(ph.forms)
}

// IsPlaceholderStart reports whether s begins with a placeholder token
func (ph *Placeholders) IsPlaceholderStart(s string) bool {
	if ph == nil || len(ph.forms) == 0 {
		return false
	}
	return strings.HasPrefix(s, ph.fence+placeholderTag)
}

func (ph *Placeholders) token(n int) string {
	return ph.fence + placeholderTag + strconv.Itoa(n) + ph.fence
}

// fenceFor picks an underscore run that does not precede the tag anywhere in text
func fenceFor(text string) string {
	fence := "__"
	for strings.Contains(text, fence+placeholderTag) {
		fence += "_"
	}
	return fence
}
