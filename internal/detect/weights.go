package detect

// Weights holds every tunable constant used by the detector
type Weights struct {
	AIIndicatorStep    float64 // Added per formal marker occurrence
	AIIndicatorCap     float64
	HumanIndicatorStep float64 // Subtracted per human marker occurrence
	HumanIndicatorCap  float64

	UniformityMinSentences int     // Uniformity only runs with more sentences than this
	UniformCV              float64 // CV below this looks machine-made
	UniformBonus           float64
	VariedCV               float64 // CV above this looks human
	VariedPenalty          float64

	MinWordLength   int     // Only words longer than this enter the frequency table
	RepetitionRatio float64 // Top word share of all words
	RepetitionBonus float64

	BurstinessThreshold float64 // CV of word frequencies
	BurstinessBonus     float64

	PronounRatio   float64
	PronounPenalty float64

	ContractionBase float64 // Penalty for the first contraction
	ContractionStep float64 // Extra penalty per further contraction
	ContractionCap  float64

	CasualRatio   float64
	CasualPenalty float64

	FragmentMaxWords     int // Sentences with fewer words are fragments
	FragmentMinSentences int
	FragmentShare        float64
	FragmentPenalty      float64

	StarterMinSentences int
	StarterVariety      float64 // Distinct first words per sentence
	StarterPenalty      float64

	MachineReasonsAbove float64
	HumanReasonsBelow   float64
}

// DefaultWeights returns the canonical detector weights
func DefaultWeights() Weights {
	return Weights{
		AIIndicatorStep:    0.08,
		AIIndicatorCap:     0.4,
		HumanIndicatorStep: 0.12,
		HumanIndicatorCap:  0.3,

		UniformityMinSentences: 3,
		UniformCV:              0.3,
		UniformBonus:           0.15,
		VariedCV:               0.6,
		VariedPenalty:          0.1,

		MinWordLength:   4,
		RepetitionRatio: 0.1,
		RepetitionBonus: 0.1,

		BurstinessThreshold: 0.5,
		BurstinessBonus:     0.1,

		PronounRatio:   0.02,
		PronounPenalty: 0.15,

		ContractionBase: 0.1,
		ContractionStep: 0.025,
		ContractionCap:  0.15,

		CasualRatio:   0.02,
		CasualPenalty: 0.1,

		FragmentMaxWords:     4,
		FragmentMinSentences: 2,
		FragmentShare:        0.2,
		FragmentPenalty:      0.05,

		StarterMinSentences: 3,
		StarterVariety:      0.7,
		StarterPenalty:      0.05,

		MachineReasonsAbove: 0.7,
		HumanReasonsBelow:   0.3,
	}
}
