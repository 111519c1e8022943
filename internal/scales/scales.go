package scales

import (
	"github.com/scrumbot/pokerbot/internal/models"
)

// Definition is one estimate scale: an ordered set of vote tokens,
// the card image for each token, and a composite image showing all
// cards at deal time. Immutable after construction.
type Definition struct {
	ID        string
	Tokens    []string
	Composite string

	artifacts map[string]string
}

// IsValidToken reports whether tok is a member of the scale.
func (d *Definition) IsValidToken(tok string) bool {
	_, ok := d.artifacts[tok]
	return ok
}

// ArtifactFor returns the card image URL for tok.
func (d *Definition) ArtifactFor(tok string) (string, error) {
	art, ok := d.artifacts[tok]
	if !ok {
		return "", models.ErrUnknownToken
	}
	return art, nil
}

// Registry holds the built-in scales, keyed by their one-letter
// identifiers: f (Fibonacci), s (simplified), t (t-shirt), m (man-days).
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry builds the four built-in scales with card artwork
// resolved against imageBase.
func NewRegistry(imageBase string) *Registry {
	build := func(id, composite string, tokens []string, files []string) *Definition {
		d := &Definition{
			ID:        id,
			Tokens:    tokens,
			Composite: imageBase + composite,
			artifacts: make(map[string]string, len(tokens)),
		}
		for i, tok := range tokens {
			d.artifacts[tok] = imageBase + files[i]
		}
		return d
	}

	defs := map[string]*Definition{
		"f": build("f", "composite.png",
			[]string{"0", "1", "2", "3", "5", "8", "13", "20", "40", "100", "?"},
			[]string{"0.png", "1.png", "2.png", "3.png", "5.png", "8.png", "13.png", "20.png", "40.png", "100.png", "unsure.png"}),
		"s": build("s", "scomposite.png",
			[]string{"1", "3", "5", "8", "?"},
			[]string{"1.png", "3.png", "5.png", "8.png", "unsure.png"}),
		// The t-shirt scale ships without its own composite card; it
		// reuses the simplified one.
		"t": build("t", "scomposite.png",
			[]string{"s", "m", "l", "xl", "?"},
			[]string{"small.png", "medium.png", "large.png", "extralarge.png", "unsure.png"}),
		"m": build("m", "mcomposite.png",
			[]string{"1", "2", "3", "4", "5", "6", "7", "8", "2d", "3d", "4d", "5d", "1.5w", "2w", "?"},
			[]string{"one.png", "two.png", "three.png", "four.png", "five.png", "six.png", "seven.png", "eight.png",
				"twod.png", "threed.png", "fourd.png", "fived.png", "weekhalf.png", "twow.png", "unsure.png"}),
	}
	return &Registry{defs: defs}
}

func (r *Registry) Resolve(id string) (*Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, models.ErrUnknownScale
	}
	return d, nil
}

func (r *Registry) IsValidToken(id, tok string) bool {
	d, ok := r.defs[id]
	return ok && d.IsValidToken(tok)
}

func (r *Registry) ArtifactFor(id, tok string) (string, error) {
	d, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return d.ArtifactFor(tok)
}
