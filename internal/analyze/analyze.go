// Package analyze compares an original text with its rewrite.
package analyze

import (
	"math"
	"strings"

	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/util"
)

// MaxDiffEntries caps the positional diff
const MaxDiffEntries = 50

const minSimilarityWordLength = 3

// Analyze reports word and sentence deltas, Jaccard similarity and a
// positional token diff between original and transformed.
//
// The diff compares tokens by index, so an insertion or deletion shifts
// every later position and is reported as a run of changes.
func Analyze(original, transformed string) model.ChangeReport {
	origWords := len(util.Words(original))
	newWords := len(util.Words(transformed))
	wordDelta := newWords - origWords

	percent := 0.0
	if origWords > 0 {
		percent = round1(math.Abs(float64(wordDelta) / float64(origWords) * 100))
	}

	return model.ChangeReport{
		WordCountDelta:     wordDelta,
		SentenceCountDelta: len(util.Sentences(transformed)) - len(util.Sentences(original)),
		PercentChanged:     percent,
		Similarity:         round1(Similarity(original, transformed)),
		Diff:               Diff(original, transformed),
	}
}

// Similarity is the Jaccard index of the lower-cased whitespace tokens
// longer than two characters, scaled to [0,100]
// Two texts without such tokens are identical by this measure.
func Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	union := len(setA)
	intersection := 0
	for w := range setB {
		if _, ok := setA[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 100
	}
	return float64(intersection) / float64(union) * 100
}

// Diff lists positions where both token streams hold different non-blank tokens
func Diff(original, transformed string) []model.DiffEntry {
	a := util.WordsWithSpacing(original)
	b := util.WordsWithSpacing(transformed)

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	diff := []model.DiffEntry{}
	for i := 0; i < n && len(diff) < MaxDiffEntries; i++ {
		var x, y string
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		tx, ty := strings.TrimSpace(x), strings.TrimSpace(y)
		if x != y && tx != "" && ty != "" {
			diff = append(diff, model.DiffEntry{Original: tx, Transformed: ty, Position: i})
		}
	}
	return diff
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range util.Words(strings.ToLower(text)) {
		if len([]rune(w)) >= minSimilarityWordLength {
			set[w] = struct{}{}
		}
	}
	return set
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
