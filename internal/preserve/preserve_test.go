package preserve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/humanizer/internal/lexicon"
)

func TestExtractProperNounsSkipSentenceStarts(t *testing.T) {
	p := New(lexicon.Default())

	terms := p.Extract("Yesterday we visited Berlin. Then Paris was next, with Anna.")

	assert.Contains(t, terms, "Berlin")
	assert.Contains(t, terms, "Anna")
	assert.Contains(t, terms, "Paris")
	assert.NotContains(t, terms, "Yesterday")
	assert.NotContains(t, terms, "Then")
}

func TestExtractAcronymsAndDomainPhrases(t *testing.T) {
	p := New(lexicon.Default())

	text := "We sort with the Dual-Pivot Quick Sort on a 3.2 GHz CPU. She holds a Master of Computer Science from the University of Oxford and uses the REST API daily."
	terms := p.Extract(text)

	for _, want := range []string{"Quick", "Sort", "GHz", "CPU", "Master", "Computer", "Science", "University", "Oxford", "REST", "API"} {
		assert.Contains(t, terms, want)
	}
}

func TestExtractLowercaseDomainPhrases(t *testing.T) {
	p := New(lexicon.Default())

	terms := lowered(p.Extract("we trained a neural network model and the merge sort algorithm in python on a 3.2 ghz cpu."))

	for _, want := range []string{"neural", "network", "model", "merge", "sort", "algorithm", "python", "ghz", "cpu"} {
		assert.Contains(t, terms, want)
	}
}

func TestExtractDedupesCaseInsensitivelyAndSorts(t *testing.T) {
	p := New(lexicon.Default())

	terms := p.Extract("The tool uses API calls. Later the Api and API layers merge with Kafka.")

	count := 0
	for _, term := range terms {
		if strings.EqualFold(term, "api") {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.IsIncreasing(t, lowered(terms))
}

func TestExtractIgnoresShortWords(t *testing.T) {
	p := New(lexicon.Default())
	assert.NotContains(t, p.Extract("This is Al and Bo."), "Bo")
}

func TestProtectRestoreRoundTrip(t *testing.T) {
	text := "The Kafka cluster and the kafka client talk to Kafka Streams over HTTP."
	protected, ph := Protect(text, []string{"Kafka", "HTTP", "Kafka Streams"})

	assert.NotContains(t, protected, "Kafka")
	assert.NotContains(t, protected, "kafka")
	assert.NotContains(t, protected, "HTTP")
	assert.True(t, ph.Leaked(protected))
	assert.Equal(t, 4, ph.Len())

	restored := ph.Restore(protected)
	assert.Equal(t, text, restored)
	assert.False(t, ph.Leaked(restored))
}

func TestProtectLongestTermWins(t *testing.T) {
	protected, ph := Protect("Use Merge Sort here.", []string{"Merge", "Merge Sort"})
	require.Equal(t, 1, ph.Len())
	assert.Equal(t, "Use Merge Sort here.", ph.Restore(protected))
}

func TestProtectWholeWordsOnly(t *testing.T) {
	protected, ph := Protect("Java and JavaScript differ.", []string{"Java"})
	assert.Contains(t, protected, "JavaScript")
	assert.Equal(t, 1, ph.Len())
}

func TestProtectAvoidsPlaceholderCollision(t *testing.T) {
	text := "Literal __HZP0__ marker next to Kafka."
	protected, ph := Protect(text, []string{"Kafka"})

	assert.Contains(t, protected, "__HZP0__ marker")
	assert.True(t, ph.Leaked(protected))
	assert.Equal(t, text, ph.Restore(protected))
}

func TestProtectNoTerms(t *testing.T) {
	protected, ph := Protect("nothing to hide", nil)
	assert.Equal(t, "nothing to hide", protected)
	assert.Equal(t, 0, ph.Len())
	assert.False(t, ph.Leaked(protected))
	assert.Equal(t, "nothing to hide", ph.Restore(protected))
}

func TestPlaceholderSurvivesCaseChangesOfFirstLetter(t *testing.T) {
	protected, ph := Protect("Kafka is fast.", []string{"Kafka"})
	require.True(t, ph.IsPlaceholderStart(protected))

	lowered := strings.ToLower(protected[:1]) + protected[1:]
	assert.Equal(t, "Kafka is fast.", ph.Restore(lowered))
}

func TestMergeDedupes(t *testing.T) {
	merged := Merge([]string{"Kafka", "API"}, []string{"kafka", "Redis"})
	assert.Equal(t, []string{"API", "Kafka", "Redis"}, merged)
}

func lowered(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = strings.ToLower(term)
	}
	return out
}
