package search

import (
	"math"
	"testing"
)

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"שלום", "hello", "", "050-1234567"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Fatalf("Similarity(%q, %q) = %v; want 1", s, s, got)
		}
	}
}

func TestSimilarity_Empty(t *testing.T) {
	if got := Similarity("", "שלום"); got != 0 {
		t.Fatalf("expected 0 for empty vs non-empty, got %v", got)
	}
	if got := Similarity("abc", ""); got != 0 {
		t.Fatalf("expected 0 for non-empty vs empty, got %v", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"שלום", "שלומ"},
		{"ישראל", "ישרא"},
		{"kitten", "sitting"},
		{"abc", "xyz"},
	}
	for _, p := range pairs {
		if a, b := Similarity(p[0], p[1]), Similarity(p[1], p[0]); a != b {
			t.Fatalf("Similarity(%q,%q)=%v but reversed=%v", p[0], p[1], a, b)
		}
	}
}

func TestSimilarity_KnownDistances(t *testing.T) {
	// One substitution over four letters.
	if got := Similarity("שלום", "שלומ"); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("Similarity(שלום, שלומ) = %v; want 0.75", got)
	}
	// One deletion over five letters.
	if got := Similarity("ישראל", "ישרא"); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("Similarity(ישראל, ישרא) = %v; want 0.8", got)
	}
	// kitten -> sitting: distance 3 over length 7.
	if got, want := Similarity("kitten", "sitting"), 1-3.0/7.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Similarity(kitten, sitting) = %v; want %v", got, want)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"שלום", "בוקר"},
		{"a", "completely different"},
		{"אבג", "דהו"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Fatalf("Similarity(%q,%q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}
