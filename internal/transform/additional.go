package transform

import (
	"math"
	"strings"

	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/preserve"
)

const (
	additionalFillerFactor = 2.0
	additionalContraction  = 0.2
)

// AdditionalPass is the lighter follow-up applied once when a transform did
// not lower the score enough: casual openers, every contraction rule at a
// raised rate and a small synonym table. preserved lists terms protected in
// the first pass; terms found in text are protected as well.
// Low intensity returns text unchanged.
func (t *Transformer) AdditionalPass(text string, intensity model.Intensity, preserved []string) string {
	if intensity == model.IntensityLow || strings.TrimSpace(text) == "" {
		return text
	}

	terms := preserve.Merge(preserved, t.preserver.Extract(text))
	r := t.newRun(text, intensity, terms)

	p := math.Min(r.cfg.Contraction+additionalContraction, 1)

	out := r.text
	out = r.injectFillers(out, math.Min(r.cfg.CasualFiller*additionalFillerFactor, 1), true)
	out = r.contract(out, p, p)
	out = r.swapSynonyms(out, stageAdditionalSynonyms, t.lex.AdditionalSynonymPattern, t.lex.AdditionalSynonyms, r.cfg.WordReplacement)

	return r.finish(out, text)
}
