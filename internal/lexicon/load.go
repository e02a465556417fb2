package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads YAML overrides from path and merges them over the built-in tables
// Map tables are merged key by key; non-empty lists replace the defaults
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex, err := New(Merge(DefaultTables(), overrides))
	if err != nil {
		return nil, fmt.Errorf("compile lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Merge overlays o onto base and returns the result
func Merge(base, o Tables) Tables {
	if len(o.AIIndicators) > 0 {
		base.AIIndicators = o.AIIndicators
	}
	if len(o.HumanIndicators) > 0 {
		base.HumanIndicators = o.HumanIndicators
	}
	if len(o.CasualPatterns) > 0 {
		base.CasualPatterns = o.CasualPatterns
	}
	if o.Pronouns != "" {
		base.Pronouns = o.Pronouns
	}
	if o.Contractions != "" {
		base.Contractions = o.Contractions
	}

	base.Replacements = mergeAlternatives(base.Replacements, o.Replacements)
	base.Synonyms = mergeAlternatives(base.Synonyms, o.Synonyms)
	base.AdditionalSynonyms = mergeAlternatives(base.AdditionalSynonyms, o.AdditionalSynonyms)

	if len(o.ContractionRules) > 0 {
		base.ContractionRules = o.ContractionRules
	}
	if len(o.NegationRules) > 0 {
		base.NegationRules = o.NegationRules
	}
	if len(o.CasualOpeners) > 0 {
		base.CasualOpeners = o.CasualOpeners
	}
	if len(o.PersonalityPhrases) > 0 {
		base.PersonalityPhrases = o.PersonalityPhrases
	}
	if len(o.PassiveVerbs) > 0 {
		merged := make(map[string]string, len(base.PassiveVerbs)+len(o.PassiveVerbs))
		for k, v := range base.PassiveVerbs {
			merged[k] = v
		}
		for k, v := range o.PassiveVerbs {
			merged[k] = v
		}
		base.PassiveVerbs = merged
	}
	if len(o.DomainPatterns) > 0 {
		base.DomainPatterns = append(append([]string(nil), base.DomainPatterns...), o.DomainPatterns...)
	}

	return base
}

func mergeAlternatives(base, o map[string][]string) map[string][]string {
	if len(o) == 0 {
		return base
	}
	merged := make(map[string][]string, len(base)+len(o))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range o {
		merged[k] = v
	}
	return merged
}
