// Package field holds the particle data of the ambient backdrop: point
// generation, per-tick motion and the proximity graph between points.
package field

import "math/rand/v2"

const (
	DefaultExtent  = 100
	DefaultMaxSize = 2
)

// PointSet stores N points as flat xyz/rgb buffers so they can be handed to
// a renderer without conversion. It is allocated once and never resized.
type PointSet struct {
	Origins   []float32
	Positions []float32
	Colors    []float32
	Sizes     []float32
}

// Len returns the number of points.
func (s *PointSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Sizes)
}

// Position returns point i's current coordinates.
func (s *PointSet) Position(i int) (x, y, z float32) {
	return s.Positions[i*3], s.Positions[i*3+1], s.Positions[i*3+2]
}

type GenerateOptions struct {
	// Extent is the side of the cube points are scattered in, centred on
	// the origin.
	Extent float32
	// MaxSize bounds the per-point size, exclusive.
	MaxSize float32
}

func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Extent: DefaultExtent, MaxSize: DefaultMaxSize}
}

// Generate scatters n points uniformly in a cube. Point i takes a color from
// gradient i%3 of the palette and a random size. Positions start at the
// origins. n <= 0 yields an empty set.
func Generate(n int, palette Palette, opts GenerateOptions, rng *rand.Rand) *PointSet {
	n = max(n, 0)
	set := &PointSet{
		Origins:   make([]float32, n*3),
		Positions: make([]float32, n*3),
		Colors:    make([]float32, n*3),
		Sizes:     make([]float32, n),
	}

	half := opts.Extent / 2
	for i := 0; i < n; i++ {
		for axis := 0; axis < 3; axis++ {
			set.Origins[i*3+axis] = rng.Float32()*opts.Extent - half
		}

		c := palette.blend(i%3, rng.Float64())
		set.Colors[i*3] = float32(c.R)
		set.Colors[i*3+1] = float32(c.G)
		set.Colors[i*3+2] = float32(c.B)

		set.Sizes[i] = rng.Float32() * opts.MaxSize
	}
	copy(set.Positions, set.Origins)

	return set
}
