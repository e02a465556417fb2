package server

import "github.com/ppiankov/humanizer/internal/model"

// Request and response bodies keep the field names of the original web API.

type textRequest struct {
	Text          string `json:"text"`
	Intensity     string `json:"intensity"`
	ForceHumanize bool   `json:"forceHumanize"`
}

type analysisDTO struct {
	Reasons        []string `json:"reasons"`
	Recommendation string   `json:"recommendation"`
}

type detectionDTO struct {
	AIScore    float64     `json:"aiScore"`
	IsLikelyAI bool        `json:"isLikelyAI"`
	Confidence float64     `json:"confidence"`
	Analysis   analysisDTO `json:"analysis"`
}

type diffDTO struct {
	Original  string `json:"original"`
	Humanized string `json:"humanized"`
	Position  int    `json:"position"`
}

type changesDTO struct {
	WordCountChange     int       `json:"wordCountChange"`
	SentenceCountChange int       `json:"sentenceCountChange"`
	PercentageChanged   float64   `json:"percentageChanged"`
	Similarity          float64   `json:"similarity"`
	Diff                []diffDTO `json:"diff"`
}

type humanizeResponse struct {
	Original    string       `json:"original"`
	Humanized   string       `json:"humanized"`
	Changes     changesDTO   `json:"changes"`
	OriginalAI  detectionDTO `json:"originalAI"`
	HumanizedAI detectionDTO `json:"humanizedAI"`
	Escalated   bool         `json:"escalated"`
	Source      model.Source `json:"source"`
}

type processResponse struct {
	Original  string `json:"original"`
	Humanized string `json:"humanized"`
	detectionDTO
	Changes     *changesDTO   `json:"changes"`
	HumanizedAI *detectionDTO `json:"humanizedAI"`
	Triggered   bool          `json:"triggered"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toDetection(st model.ScoredText) detectionDTO {
	reasons := st.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return detectionDTO{
		AIScore:    st.Score,
		IsLikelyAI: st.IsLikelyMachine,
		Confidence: st.Confidence,
		Analysis: analysisDTO{
			Reasons:        reasons,
			Recommendation: st.Recommendation,
		},
	}
}

func toChanges(c model.ChangeReport) changesDTO {
	diff := make([]diffDTO, len(c.Diff))
	for i, d := range c.Diff {
		diff[i] = diffDTO{Original: d.Original, Humanized: d.Transformed, Position: d.Position}
	}
	return changesDTO{
		WordCountChange:     c.WordCountDelta,
		SentenceCountChange: c.SentenceCountDelta,
		PercentageChanged:   c.PercentChanged,
		Similarity:          c.Similarity,
		Diff:                diff,
	}
}
