package model

import "testing"

func TestNormalizeTextComposesCombiningMarks(t *testing.T) {
	decomposed := "école" // "e" + combining acute accent (U+0301)
	composed := "école"    // precomposed "e" with acute (U+00E9)

	got := NormalizeText(decomposed)
	if got != composed {
		t.Errorf("NormalizeText(%q) = %q, want %q", decomposed, got, composed)
	}
}

func TestNormalizeTextLeavesPlainASCIIUnchanged(t *testing.T) {
	if got := NormalizeText("Hello World"); got != "Hello World" {
		t.Errorf("NormalizeText(plain ASCII) = %q, want unchanged", got)
	}
}

func TestNormalizeTextIsIdempotent(t *testing.T) {
	s := NormalizeText("école")
	if got := NormalizeText(s); got != s {
		t.Errorf("NormalizeText is not idempotent: got %q, want %q", got, s)
	}
}
