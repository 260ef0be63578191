package field

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Palette holds the three anchor colors the field blends between.
type Palette [3]colorful.Color

// DefaultPalette is cyan, violet and pink.
var DefaultPalette = MustParsePalette("#00D1FF", "#7B4DFF", "#FF3E9A")

// ParsePalette parses three "#rrggbb" anchors.
func ParsePalette(hex ...string) (Palette, error) {
	var p Palette
	if len(hex) != len(p) {
		return p, errors.Errorf("palette needs %d colors, got %d", len(p), len(hex))
	}
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return p, errors.Wrapf(err, "palette color %d", i)
		}
		p[i] = c
	}
	return p, nil
}

// MustParsePalette is ParsePalette for package-level literals.
func MustParsePalette(hex ...string) Palette {
	p, err := ParsePalette(hex...)
	if err != nil {
		panic(err)
	}
	return p
}

// Hex returns the anchors as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// blend picks the gradient for group and mixes along it by t.
func (p Palette) blend(group int, t float64) colorful.Color {
	from, to := p[group%3], p[(group+1)%3]
	return from.BlendLinearRgb(to, t).Clamped()
}
