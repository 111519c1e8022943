package scales

import (
	"errors"
	"testing"

	"github.com/scrumbot/pokerbot/internal/models"
)

const base = "https://img.example.com/"

func TestResolveBuiltInScales(t *testing.T) {
	r := NewRegistry(base)

	tests := []struct {
		id        string
		tokens    int
		composite string
	}{
		{"f", 11, base + "composite.png"},
		{"s", 5, base + "scomposite.png"},
		{"t", 5, base + "scomposite.png"},
		{"m", 15, base + "mcomposite.png"},
	}
	for _, tt := range tests {
		def, err := r.Resolve(tt.id)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.id, err)
		}
		if len(def.Tokens) != tt.tokens {
			t.Errorf("scale %q: got %d tokens, want %d", tt.id, len(def.Tokens), tt.tokens)
		}
		if def.Composite != tt.composite {
			t.Errorf("scale %q: composite %q, want %q", tt.id, def.Composite, tt.composite)
		}
	}
}

func TestResolveUnknownScale(t *testing.T) {
	r := NewRegistry(base)
	if _, err := r.Resolve("x"); !errors.Is(err, models.ErrUnknownScale) {
		t.Fatalf("Resolve(\"x\") error = %v, want ErrUnknownScale", err)
	}
}

func TestArtifactFor(t *testing.T) {
	r := NewRegistry(base)

	tests := []struct {
		id, tok, want string
	}{
		{"f", "13", base + "13.png"},
		{"f", "?", base + "unsure.png"},
		{"t", "xl", base + "extralarge.png"},
		{"m", "1.5w", base + "weekhalf.png"},
	}
	for _, tt := range tests {
		got, err := r.ArtifactFor(tt.id, tt.tok)
		if err != nil {
			t.Fatalf("ArtifactFor(%q, %q): %v", tt.id, tt.tok, err)
		}
		if got != tt.want {
			t.Errorf("ArtifactFor(%q, %q) = %q, want %q", tt.id, tt.tok, got, tt.want)
		}
	}

	if _, err := r.ArtifactFor("s", "13"); !errors.Is(err, models.ErrUnknownToken) {
		t.Errorf("ArtifactFor(\"s\", \"13\") error = %v, want ErrUnknownToken", err)
	}
	if _, err := r.ArtifactFor("x", "1"); !errors.Is(err, models.ErrUnknownScale) {
		t.Errorf("ArtifactFor(\"x\", \"1\") error = %v, want ErrUnknownScale", err)
	}
}

func TestIsValidToken(t *testing.T) {
	r := NewRegistry(base)

	valid := [][2]string{{"f", "0"}, {"f", "100"}, {"s", "8"}, {"t", "s"}, {"m", "2d"}, {"m", "?"}}
	for _, v := range valid {
		if !r.IsValidToken(v[0], v[1]) {
			t.Errorf("IsValidToken(%q, %q) = false, want true", v[0], v[1])
		}
	}
	invalid := [][2]string{{"f", "4"}, {"s", "13"}, {"t", "xxl"}, {"m", "3w"}, {"x", "1"}}
	for _, v := range invalid {
		if r.IsValidToken(v[0], v[1]) {
			t.Errorf("IsValidToken(%q, %q) = true, want false", v[0], v[1])
		}
	}
}
