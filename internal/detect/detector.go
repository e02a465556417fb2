// Package detect scores how machine-authored a text looks.
//
// The score starts at a neutral 0.5 and is moved by a fixed sequence of
// adjustments (lexical markers, sentence uniformity, repetition, burstiness,
// voice markers). Each adjustment that fires is reported as a model.Signal so
// callers can see exactly why a text landed where it did.
package detect

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/ppiankov/humanizer/internal/lexicon"
	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/util"
)

const neutralScore = 0.5

var (
	machineReasons = []string{
		"High use of formal transition phrases",
		"Uniform sentence structure",
		"Lack of personal voice",
	}
	humanReasons = []string{
		"Personal voice detected",
		"Varied sentence structure",
		"Natural language patterns",
	}
)

const (
	recommendHumanize = "Consider humanizing this text to make it more natural"
	recommendKeep     = "Text appears to be naturally written"
)

// Detector computes AI-likeness scores
// It holds only read-only tables and is safe for concurrent use
type Detector struct {
	lex *lexicon.Lexicon
	w   Weights
}

// NewDetector creates a detector over the given lexicon and weights
func NewDetector(lex *lexicon.Lexicon, w Weights) *Detector {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Detector{lex: lex, w: w}
}

// features are the measurements shared by several adjustments
type features struct {
	words     []string
	sentences []string
	freq      map[string]int
}

func (d *Detector) measure(text string) features {
	f := features{
		words:     util.Words(text),
		sentences: util.Sentences(text),
		freq:      make(map[string]int),
	}
	for _, word := range f.words {
		clean := util.CleanWord(word)
		if len(clean) > d.w.MinWordLength {
			f.freq[clean]++
		}
	}
	return f
}

// Score rates text in [0,1]; higher means more machine-like
// Whitespace-only text gets the neutral score and no reasons
func (d *Detector) Score(text string) model.ScoredText {
	if strings.TrimSpace(text) == "" {
		return d.verdict(text, neutralScore, nil)
	}

	f := d.measure(text)
	score := neutralScore
	var signals []model.Signal

	adjustments := []func(string, features) (float64, *model.Signal){
		d.aiIndicators,
		d.humanIndicators,
		d.uniformity,
		d.repetition,
		d.burstiness,
		d.pronouns,
		d.contractions,
		d.casualDensity,
		d.fragments,
		d.starterVariety,
	}
	for _, adjust := range adjustments {
		delta, signal := adjust(text, f)
		if signal == nil {
			continue
		}
		score += delta
		signal.Delta = round(delta, 4)
		signals = append(signals, *signal)
	}

	return d.verdict(text, clamp(score), signals)
}

func (d *Detector) verdict(text string, score float64, signals []model.Signal) model.ScoredText {
	return model.ScoredText{
		Text:            text,
		Score:           score,
		IsLikelyMachine: score > model.MachineThreshold,
		Confidence:      math.Abs(score-neutralScore) * 2,
		Reasons:         d.Reasons(score),
		Recommendation:  Recommendation(score),
		Signals:         signals,
	}
}

// Reasons returns the canned explanation for a score band
// The middle band has no reasons
func (d *Detector) Reasons(score float64) []string {
	switch {
	case score > d.w.MachineReasonsAbove:
		return append([]string(nil), machineReasons...)
	case score < d.w.HumanReasonsBelow:
		return append([]string(nil), humanReasons...)
	default:
		return []string{}
	}
}

// Recommendation returns the user-facing advice for a score
func Recommendation(score float64) string {
	if score > model.MachineThreshold {
		return recommendHumanize
	}
	return recommendKeep
}

func (d *Detector) aiIndicators(text string, _ features) (float64, *model.Signal) {
	n := countAll(d.lex.AIIndicators, text)
	if n == 0 {
		return 0, nil
	}
	delta := math.Min(float64(n)*d.w.AIIndicatorStep, d.w.AIIndicatorCap)
	return delta, &model.Signal{
		Type:        model.SignalAIIndicators,
		Severity:    model.SeverityMachine,
		Description: fmt.Sprintf("%d formal marker(s)", n),
		Data: map[string]interface{}{
			"count":   n,
			"formula": fmt.Sprintf("min(count * %g, %g)", d.w.AIIndicatorStep, d.w.AIIndicatorCap),
		},
	}
}

func (d *Detector) humanIndicators(text string, _ features) (float64, *model.Signal) {
	n := countAll(d.lex.HumanIndicators, text)
	if n == 0 {
		return 0, nil
	}
	delta := -math.Min(float64(n)*d.w.HumanIndicatorStep, d.w.HumanIndicatorCap)
	return delta, &model.Signal{
		Type:        model.SignalHumanIndicators,
		Severity:    model.SeverityHuman,
		Description: fmt.Sprintf("%d personal or informal marker(s)", n),
		Data: map[string]interface{}{
			"count":   n,
			"formula": fmt.Sprintf("-min(count * %g, %g)", d.w.HumanIndicatorStep, d.w.HumanIndicatorCap),
		},
	}
}

func (d *Detector) uniformity(_ string, f features) (float64, *model.Signal) {
	if len(f.sentences) <= d.w.UniformityMinSentences {
		return 0, nil
	}

	lengths := make([]float64, len(f.sentences))
	for i, s := range f.sentences {
		lengths[i] = float64(len([]rune(s)))
	}
	cv := coefficientOfVariation(lengths)

	data := map[string]interface{}{
		"sentences": len(f.sentences),
		"cv":        round(cv, 4),
		"formula":   "stddev(sentence_length) / mean(sentence_length)",
	}
	switch {
	case cv < d.w.UniformCV:
		return d.w.UniformBonus, &model.Signal{
			Type:        model.SignalUniformity,
			Severity:    model.SeverityMachine,
			Description: fmt.Sprintf("Uniform sentence lengths (CV %.2f)", cv),
			Data:        data,
		}
	case cv > d.w.VariedCV:
		return -d.w.VariedPenalty, &model.Signal{
			Type:        model.SignalUniformity,
			Severity:    model.SeverityHuman,
			Description: fmt.Sprintf("Varied sentence lengths (CV %.2f)", cv),
			Data:        data,
		}
	}
	return 0, nil
}

func (d *Detector) repetition(_ string, f features) (float64, *model.Signal) {
	maxFreq := 0
	top := ""
	for word, n := range f.freq {
		if n > maxFreq || (n == maxFreq && word < top) {
			maxFreq, top = n, word
		}
	}
	ratio := safeRatio(maxFreq, len(f.words))
	if ratio <= d.w.RepetitionRatio {
		return 0, nil
	}
	return d.w.RepetitionBonus, &model.Signal{
		Type:        model.SignalRepetition,
		Severity:    model.SeverityMachine,
		Description: fmt.Sprintf("%q makes up %.0f%% of words", top, ratio*100),
		Data: map[string]interface{}{
			"word":    top,
			"count":   maxFreq,
			"words":   len(f.words),
			"ratio":   round(ratio, 4),
			"formula": "max(word_frequency) / word_count",
		},
	}
}

func (d *Detector) burstiness(_ string, f features) (float64, *model.Signal) {
	if len(f.freq) == 0 {
		return 0, nil
	}
	values := make([]float64, 0, len(f.freq))
	for _, n := range f.freq {
		values = append(values, float64(n))
	}
	b := coefficientOfVariation(values)
	if b >= d.w.BurstinessThreshold {
		return 0, nil
	}
	return d.w.BurstinessBonus, &model.Signal{
		Type:        model.SignalBurstiness,
		Severity:    model.SeverityMachine,
		Description: fmt.Sprintf("Flat word frequencies (burstiness %.2f)", b),
		Data: map[string]interface{}{
			"distinct":   len(values),
			"burstiness": round(b, 4),
			"formula":    "stddev(word_frequency) / mean(word_frequency)",
		},
	}
}

func (d *Detector) pronouns(text string, f features) (float64, *model.Signal) {
	if d.lex.Pronouns == nil {
		return 0, nil
	}
	n := len(d.lex.Pronouns.FindAllStringIndex(text, -1))
	ratio := safeRatio(n, len(f.words))
	if ratio <= d.w.PronounRatio {
		return 0, nil
	}
	return -d.w.PronounPenalty, &model.Signal{
		Type:        model.SignalPronounDensity,
		Severity:    model.SeverityHuman,
		Description: fmt.Sprintf("%d personal pronoun(s)", n),
		Data: map[string]interface{}{
			"count":   n,
			"ratio":   round(ratio, 4),
			"formula": "pronouns / word_count",
		},
	}
}

func (d *Detector) contractions(text string, _ features) (float64, *model.Signal) {
	if d.lex.Contractions == nil {
		return 0, nil
	}
	n := len(d.lex.Contractions.FindAllStringIndex(text, -1))
	if n == 0 {
		return 0, nil
	}
	delta := -math.Min(d.w.ContractionBase+d.w.ContractionStep*float64(n-1), d.w.ContractionCap)
	return delta, &model.Signal{
		Type:        model.SignalContractions,
		Severity:    model.SeverityHuman,
		Description: fmt.Sprintf("%d contraction(s)", n),
		Data: map[string]interface{}{
			"count": n,
			"formula": fmt.Sprintf("-min(%g + %g * (count - 1), %g)",
				d.w.ContractionBase, d.w.ContractionStep, d.w.ContractionCap),
		},
	}
}

func (d *Detector) casualDensity(text string, f features) (float64, *model.Signal) {
	n := countAll(d.lex.CasualPatterns, text)
	ratio := safeRatio(n, len(f.words))
	if ratio <= d.w.CasualRatio {
		return 0, nil
	}
	return -d.w.CasualPenalty, &model.Signal{
		Type:        model.SignalCasualDensity,
		Severity:    model.SeverityHuman,
		Description: fmt.Sprintf("%d casual expression(s)", n),
		Data: map[string]interface{}{
			"count":   n,
			"ratio":   round(ratio, 4),
			"formula": "casual_matches / word_count",
		},
	}
}

func (d *Detector) fragments(_ string, f features) (float64, *model.Signal) {
	if len(f.sentences) < d.w.FragmentMinSentences {
		return 0, nil
	}
	short := 0
	for _, s := range f.sentences {
		if len(strings.Fields(s)) < d.w.FragmentMaxWords {
			short++
		}
	}
	share := safeRatio(short, len(f.sentences))
	if share <= d.w.FragmentShare {
		return 0, nil
	}
	return -d.w.FragmentPenalty, &model.Signal{
		Type:        model.SignalFragments,
		Severity:    model.SeverityHuman,
		Description: fmt.Sprintf("%d of %d sentences are fragments", short, len(f.sentences)),
		Data: map[string]interface{}{
			"fragments": short,
			"sentences": len(f.sentences),
			"share":     round(share, 4),
		},
	}
}

func (d *Detector) starterVariety(_ string, f features) (float64, *model.Signal) {
	if len(f.sentences) <= d.w.StarterMinSentences {
		return 0, nil
	}
	starters := make(map[string]struct{}, len(f.sentences))
	for _, s := range f.sentences {
		if fields := strings.Fields(s); len(fields) > 0 {
			starters[util.CleanWord(fields[0])] = struct{}{}
		}
	}
	variety := safeRatio(len(starters), len(f.sentences))
	if variety <= d.w.StarterVariety {
		return 0, nil
	}
	return -d.w.StarterPenalty, &model.Signal{
		Type:        model.SignalStarterVariety,
		Severity:    model.SeverityHuman,
		Description: fmt.Sprintf("%d distinct sentence openers", len(starters)),
		Data: map[string]interface{}{
			"distinct":  len(starters),
			"sentences": len(f.sentences),
			"variety":   round(variety, 4),
		},
	}
}

func countAll(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// coefficientOfVariation uses the population variance; 0 when the mean is 0
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq/float64(len(values))) / mean
}

func safeRatio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(1, score))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
