package utils

import (
	"regexp"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"My Photo (1).JPG": "My_Photo__1_.JPG",
		"ok-name_1.png":    "ok-name_1.png",
		"a/b\\c.jpg":       "a_b_c.jpg",
		"":                 "",
		"café.jpg":         "caf_.jpg",
		"日本.png":          "__.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanStringTrimsAndCapsRunes(t *testing.T) {
	if got := CleanString("  hello  ", 120); got != "hello" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := CleanString("ééééé", 3); got != "ééé" {
		t.Fatalf("expected rune-capped value, got %q", got)
	}
}

func TestNewEditTokenIsHex128(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{32}$`)
	first, err := NewEditToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	second, err := NewEditToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if !pattern.MatchString(first) || !pattern.MatchString(second) {
		t.Fatalf("unexpected token format %q %q", first, second)
	}
	if first == second {
		t.Fatalf("expected distinct tokens")
	}
}

func TestRandomBase36(t *testing.T) {
	s, err := RandomBase36(8)
	if err != nil {
		t.Fatalf("base36: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-z]{8}$`).MatchString(s) {
		t.Fatalf("unexpected suffix %q", s)
	}
}
