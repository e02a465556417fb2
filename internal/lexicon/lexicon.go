// Package lexicon holds the phrase dictionaries and pattern lists shared by
// the detector and the transformer. A Lexicon is immutable once built and is
// safe for concurrent use.
package lexicon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Tables is the raw, serializable form of a lexicon
type Tables struct {
	AIIndicators    []string `yaml:"ai_indicators,omitempty"`    // Matched case-insensitively, every occurrence counts
	HumanIndicators []string `yaml:"human_indicators,omitempty"` // Matched case-insensitively, every occurrence counts
	CasualPatterns  []string `yaml:"casual_patterns,omitempty"`
	Pronouns        string   `yaml:"pronouns,omitempty"`
	Contractions    string   `yaml:"contractions,omitempty"`

	Replacements       map[string][]string `yaml:"replacements,omitempty"`        // Formal phrase -> casual alternatives
	Synonyms           map[string][]string `yaml:"synonyms,omitempty"`            // Intensity words -> plain words
	AdditionalSynonyms map[string][]string `yaml:"additional_synonyms,omitempty"` // Small table for the additional pass

	ContractionRules []RuleSpec `yaml:"contraction_rules,omitempty"`
	NegationRules    []RuleSpec `yaml:"negation_rules,omitempty"`

	CasualOpeners      []string          `yaml:"openers,omitempty"`
	PersonalityPhrases []string          `yaml:"personality,omitempty"`
	PassiveVerbs       map[string]string `yaml:"passive_verbs,omitempty"` // Past participle -> first-person active form

	DomainPatterns []string `yaml:"domain_patterns,omitempty"` // Terms that must survive rewriting
}

// RuleSpec is an uncompiled expanded-form -> contracted-form rule
type RuleSpec struct {
	From          string `yaml:"from"`
	To            string `yaml:"to"`
	CaseSensitive bool   `yaml:"case_sensitive,omitempty"`
}

// Rule is a compiled rewrite rule
type Rule struct {
	Pattern       *regexp.Regexp
	Replacement   string
	CaseSensitive bool
}

// Lexicon is the compiled, read-only form of Tables
type Lexicon struct {
	AIIndicators    []*regexp.Regexp
	HumanIndicators []*regexp.Regexp
	CasualPatterns  []*regexp.Regexp
	Pronouns        *regexp.Regexp
	Contractions    *regexp.Regexp

	Replacements       map[string][]string
	Synonyms           map[string][]string
	AdditionalSynonyms map[string][]string

	// Longest-key-first alternations over the tables above
	ReplacementPattern       *regexp.Regexp
	SynonymPattern           *regexp.Regexp
	AdditionalSynonymPattern *regexp.Regexp

	ContractionRules []Rule
	NegationRules    []Rule

	CasualOpeners      []string
	PersonalityPhrases []string
	PassiveVerbs       map[string]string
	PassivePattern     *regexp.Regexp

	DomainPatterns []*regexp.Regexp
}

// New compiles tables into a Lexicon
func New(t Tables) (*Lexicon, error) {
	lex := &Lexicon{
		Replacements:       lowerKeys(t.Replacements),
		Synonyms:           lowerKeys(t.Synonyms),
		AdditionalSynonyms: lowerKeys(t.AdditionalSynonyms),
		CasualOpeners:      append([]string(nil), t.CasualOpeners...),
		PersonalityPhrases: append([]string(nil), t.PersonalityPhrases...),
		PassiveVerbs:       make(map[string]string, len(t.PassiveVerbs)),
	}

	var err error
	if lex.AIIndicators, err = compileAll(t.AIIndicators, true); err != nil {
		return nil, fmt.Errorf("ai indicators: %w", err)
	}
	if lex.HumanIndicators, err = compileAll(t.HumanIndicators, true); err != nil {
		return nil, fmt.Errorf("human indicators: %w", err)
	}
	if lex.CasualPatterns, err = compileAll(t.CasualPatterns, true); err != nil {
		return nil, fmt.Errorf("casual patterns: %w", err)
	}
	if lex.DomainPatterns, err = compileAll(t.DomainPatterns, true); err != nil {
		return nil, fmt.Errorf("domain patterns: %w", err)
	}
	if lex.Pronouns, err = compileOptional(t.Pronouns); err != nil {
		return nil, fmt.Errorf("pronouns: %w", err)
	}
	if lex.Contractions, err = compileOptional(t.Contractions); err != nil {
		return nil, fmt.Errorf("contractions: %w", err)
	}

	lex.ReplacementPattern = Alternation(keys(lex.Replacements))
	lex.SynonymPattern = Alternation(keys(lex.Synonyms))
	lex.AdditionalSynonymPattern = Alternation(keys(lex.AdditionalSynonyms))

	if lex.ContractionRules, err = compileRules(t.ContractionRules); err != nil {
		return nil, fmt.Errorf("contraction rules: %w", err)
	}
	if lex.NegationRules, err = compileRules(t.NegationRules); err != nil {
		return nil, fmt.Errorf("negation rules: %w", err)
	}

	verbs := make([]string, 0, len(t.PassiveVerbs))
	for verb, active := range t.PassiveVerbs {
		verb = strings.ToLower(strings.TrimSpace(verb))
		if verb == "" || active == "" {
			continue
		}
		lex.PassiveVerbs[verb] = active
		verbs = append(verbs, regexp.QuoteMeta(verb))
	}
	if len(verbs) > 0 {
		sort.Strings(verbs)
		lex.PassivePattern = regexp.MustCompile(`(?i)\b(?:was|were) (` + strings.Join(verbs, "|") + `)\b`)
	}

	return lex, nil
}

// Default returns the built-in lexicon
func Default() *Lexicon {
	lex, err := New(DefaultTables())
	if err != nil {
		panic(fmt.Sprintf("lexicon: built-in tables do not compile: %v", err))
	}
	return lex
}

// Alternation builds a case-insensitive whole-word pattern matching any key
// Longer keys come first so that a phrase wins over a shorter key it contains
// Returns nil when keys is empty
func Alternation(keys []string) *regexp.Regexp {
	if len(keys) == 0 {
		return nil
	}

	sorted := append([]string(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	quoted := make([]string, len(sorted))
	for i, k := range sorted {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func compileAll(sources []string, foldCase bool) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		if foldCase {
			src = "(?i)" + src
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", src, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func compileOptional(src string) (*regexp.Regexp, error) {
	if src == "" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + src)
}

func compileRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		src := `\b` + regexp.QuoteMeta(spec.From) + `\b`
		if !spec.CaseSensitive {
			src = "(?i)" + src
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", spec.From, err)
		}
		rules = append(rules, Rule{Pattern: re, Replacement: spec.To, CaseSensitive: spec.CaseSensitive})
	}
	return rules, nil
}

func lowerKeys(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || len(v) == 0 {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
