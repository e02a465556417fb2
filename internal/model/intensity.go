package model

import (
	"fmt"
	"strings"
)

// Intensity controls how aggressively text is rewritten
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ParseIntensity parses a user supplied intensity; empty means medium
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return IntensityMedium, nil
	case "low":
		return IntensityLow, nil
	case "medium":
		return IntensityMedium, nil
	case "high":
		return IntensityHigh, nil
	default:
		return "", fmt.Errorf("unknown intensity %q (supported: low, medium, high)", s)
	}
}

func (i Intensity) String() string {
	return string(i)
}

// TransformConfig holds the probabilities used by one transformation run
// Every field of a higher intensity is strictly greater than the same field of a lower one
type TransformConfig struct {
	SentenceSplit   float64 // Split sentences over 100 chars
	SentenceMerge   float64 // Merge sentences under 30 chars into the previous one
	WordReplacement float64 // Formal phrase substitution per match
	Contraction     float64 // Contraction rule application
	Personality     float64 // First-person framing before the first sentence
	CasualFiller    float64 // Casual opener per sentence
	PassiveVoice    float64 // Passive to active rewrite
	SynonymSwap     float64 // Intensity-word synonym swap per match

	MidTextFraming      bool // Also frame a sentence in the middle of the text
	ParaphraseBatchSize int  // Sentences per paraphrase upstream call
}

var transformConfigs = map[Intensity]TransformConfig{
	IntensityLow: {
		SentenceSplit:       0.15,
		SentenceMerge:       0.20,
		WordReplacement:     0.50,
		Contraction:         0.30,
		Personality:         0.00,
		CasualFiller:        0.05,
		PassiveVoice:        0.10,
		SynonymSwap:         0.20,
		ParaphraseBatchSize: 4,
	},
	IntensityMedium: {
		SentenceSplit:       0.30,
		SentenceMerge:       0.30,
		WordReplacement:     0.70,
		Contraction:         0.50,
		Personality:         0.40,
		CasualFiller:        0.10,
		PassiveVoice:        0.20,
		SynonymSwap:         0.40,
		ParaphraseBatchSize: 3,
	},
	IntensityHigh: {
		SentenceSplit:       0.50,
		SentenceMerge:       0.40,
		WordReplacement:     1.00,
		Contraction:         0.70,
		Personality:         0.60,
		CasualFiller:        0.20,
		PassiveVoice:        0.30,
		SynonymSwap:         0.60,
		MidTextFraming:      true,
		ParaphraseBatchSize: 2,
	},
}

// ConfigFor returns the transform configuration for an intensity
// Unknown intensities fall back to medium
func ConfigFor(i Intensity) TransformConfig {
	if cfg, ok := transformConfigs[i]; ok {
		return cfg
	}
	return transformConfigs[IntensityMedium]
}
