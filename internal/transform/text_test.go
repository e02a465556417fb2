package transform

import (
	"strings"
	"testing"
)

func TestLowerLead(t *testing.T) {
	tests := map[string]string{
		"The cat":       "the cat",
		"I think so":    "I think so",
		"I'm here":      "I'm here",
		"NASA launched": "NASA launched",
		"__HZP0__ runs": "__HZP0__ runs",
		"already low":   "already low",
	}
	for in, want := range tests {
		if got := lowerLead(in); got != want {
			t.Errorf("lowerLead(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestMatchCase(t *testing.T) {
	if got := matchCase("Furthermore", "what's more"); got != "What's more" {
		t.Errorf("expected capitalized replacement, got %q", got)
	}
	if got := matchCase("furthermore", "also"); got != "also" {
		t.Errorf("expected lower-case replacement, got %q", got)
	}
}

func TestBreakSentenceSkipsProperNouns(t *testing.T) {
	r := &run{}
	body := "We looked at every option during the long review, Berlin came out ahead of the others after weeks of debate among the staff"

	first, second, ok := r.breakSentence(body)
	if ok && strings.HasPrefix(second, "Berlin") {
		t.Errorf("expected no break before a capitalized word, got %q | %q", first, second)
	}
}

func TestBreakSentencePrefersClauseBoundary(t *testing.T) {
	r := &run{}
	body := "The committee reviewed every single proposal that arrived during the spring, and after several long meetings it finally settled on the plan"

	first, second, ok := r.breakSentence(body)
	if !ok {
		t.Fatal("expected a break point")
	}
	if first != "The committee reviewed every single proposal that arrived during the spring" {
		t.Errorf("unexpected first part %q", first)
	}
	if second != "and after several long meetings it finally settled on the plan" {
		t.Errorf("unexpected second part %q", second)
	}
}

func TestBreakSentenceNeedsOffset(t *testing.T) {
	r := &run{}
	if _, _, ok := r.breakSentence("Short, text"); ok {
		t.Error("expected no break point within the first characters")
	}
}
