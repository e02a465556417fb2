package model

import "time"

// ScoredText is the detector verdict for a single text
// Created fresh per detector call and never mutated afterwards
type ScoredText struct {
	Text            string   `json:"text"`
	Score           float64  `json:"score"`             // AI-likeness in [0,1]
	IsLikelyMachine bool     `json:"is_likely_machine"` // Score > MachineThreshold
	Confidence      float64  `json:"confidence"`        // |Score-0.5|*2
	Reasons         []string `json:"reasons"`           // Canned labels chosen by score band
	Recommendation  string   `json:"recommendation"`
	Signals         []Signal `json:"signals,omitempty"` // Adjustments that fired, with their inputs
}

// MachineThreshold is the score above which text is classified as machine-authored
const MachineThreshold = 0.6

// Signal records one detector adjustment with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Delta       float64                `json:"delta"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies a detector adjustment
type SignalType string

const (
	SignalAIIndicators    SignalType = "ai_indicators"
	SignalHumanIndicators SignalType = "human_indicators"
	SignalUniformity      SignalType = "sentence_uniformity"
	SignalRepetition      SignalType = "lexical_repetition"
	SignalBurstiness      SignalType = "burstiness"
	SignalPronounDensity  SignalType = "pronoun_density"
	SignalContractions    SignalType = "contractions"
	SignalCasualDensity   SignalType = "casual_density"
	SignalFragments       SignalType = "sentence_fragments"
	SignalStarterVariety  SignalType = "starter_variety"
)

// SignalSeverity tells which way a signal pushes the score
type SignalSeverity string

const (
	SeverityMachine SignalSeverity = "machine" // Raised the score
	SeverityHuman   SignalSeverity = "human"   // Lowered the score
)

// ChangeReport summarizes the differences between an original and a transformed text
// Derived and read-only; recomputed for every comparison
type ChangeReport struct {
	WordCountDelta     int         `json:"word_count_delta"`
	SentenceCountDelta int         `json:"sentence_count_delta"`
	PercentChanged     float64     `json:"percent_changed"`
	Similarity         float64     `json:"similarity"` // Jaccard index in [0,100]
	Diff               []DiffEntry `json:"diff"`
}

// DiffEntry is one positional token difference
type DiffEntry struct {
	Original    string `json:"original"`
	Transformed string `json:"transformed"`
	Position    int    `json:"position"`
}

// Source names the engine that produced a transformed text
type Source string

const (
	SourceRules      Source = "rules"      // Deterministic rule-driven transformer
	SourceParaphrase Source = "paraphrase" // External paraphrase upstream (with per-batch fallback)
)

// DetectResult is returned by the detect operation
type DetectResult struct {
	Detection ScoredText `json:"detection"`
	CheckedAt time.Time  `json:"checked_at"`
}

// TransformResult is returned by the transform operation
type TransformResult struct {
	Original         string       `json:"original"`
	Transformed      string       `json:"transformed"`
	Intensity        Intensity    `json:"intensity"`
	OriginalScore    ScoredText   `json:"original_score"`
	TransformedScore ScoredText   `json:"transformed_score"`
	Changes          ChangeReport `json:"changes"`
	Escalated        bool         `json:"escalated"` // Additional pass was applied
	Source           Source       `json:"source"`
}

// ProcessResult is returned by the process operation
// Transformed fields are nil when the transform sequence was not triggered
type ProcessResult struct {
	Original         string        `json:"original"`
	Detection        ScoredText    `json:"detection"`
	Triggered        bool          `json:"triggered"`
	Forced           bool          `json:"forced"`
	Transformed      *string       `json:"transformed"`
	TransformedScore *ScoredText   `json:"transformed_score"`
	Changes          *ChangeReport `json:"changes"`
	Escalated        bool          `json:"escalated"`
	Source           Source        `json:"source,omitempty"`
}
