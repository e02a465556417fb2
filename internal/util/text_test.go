package util

import (
	"reflect"
	"testing"
)

func TestSplitSentencesKeepsDecimals(t *testing.T) {
	ss := SplitSentences("It runs at 3.2 GHz. Version 1.2.3 shipped!  Trailing bit")
	if len(ss) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %+v", len(ss), ss)
	}
	if ss[0].Body != "It runs at 3.2 GHz" || ss[0].Punct != "." {
		t.Errorf("unexpected first sentence: %+v", ss[0])
	}
	if ss[1].Punct != "!" {
		t.Errorf("expected '!' terminator, got %q", ss[1].Punct)
	}
	if ss[2].Body != "Trailing bit" || ss[2].Punct != "" {
		t.Errorf("unexpected trailing fragment: %+v", ss[2])
	}
	if got := JoinSentences(ss); got != "It runs at 3.2 GHz. Version 1.2.3 shipped! Trailing bit" {
		t.Errorf("unexpected join: %q", got)
	}
}

func TestSplitSentencesDropsEmptyBodies(t *testing.T) {
	if ss := SplitSentences("...  !!! ?"); len(ss) != 0 {
		t.Errorf("expected no sentences, got %+v", ss)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("One. Two!! Three? ")
	want := []string{"One", "Two", "Three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if n := len(Sentences("   ")); n != 0 {
		t.Errorf("expected 0 sentences, got %d", n)
	}
}

func TestWordsCountsEdgeWhitespace(t *testing.T) {
	if n := len(Words("a b")); n != 2 {
		t.Errorf("expected 2 words, got %d", n)
	}
	if n := len(Words(" a b ")); n != 4 {
		t.Errorf("expected 4 tokens with edge whitespace, got %d", n)
	}
}

func TestWordsWithSpacing(t *testing.T) {
	got := WordsWithSpacing("a  b c")
	want := []string{"a", "  ", "b", " ", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCleanWord(t *testing.T) {
	if got := CleanWord("Don't!"); got != "dont" {
		t.Errorf("expected dont, got %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  a \n\t b  "); got != "a b" {
		t.Errorf("expected %q, got %q", "a b", got)
	}
}
