package surface

import (
	"slices"

	"github.com/pkg/errors"
)

// Factory creates a surface of the given size.
type Factory func(w, h int) (Surface, error)

// Region is a sized host area that surfaces are mounted into. It plays the
// part of the container an engine attaches to.
type Region struct {
	width, height int
	factory       Factory
	children      []Surface
}

func NewRegion(w, h int, factory Factory) *Region {
	return &Region{width: w, height: h, factory: factory}
}

func (r *Region) Size() (w, h int) {
	return r.width, r.height
}

// SetSize records a new host size. Mounted surfaces are not touched; the
// owning engine resizes them.
func (r *Region) SetSize(w, h int) {
	r.width, r.height = w, h
}

// NewSurface creates a detached surface through the region's factory.
func (r *Region) NewSurface(w, h int) (Surface, error) {
	if r.factory == nil {
		return nil, errors.New("region has no surface factory")
	}
	s, err := r.factory(w, h)
	if err != nil {
		return nil, errors.Wrapf(err, "create %dx%d surface", w, h)
	}
	return s, nil
}

// Append mounts s at the end of the region.
func (r *Region) Append(s Surface) error {
	if s == nil {
		return errors.New("append nil surface")
	}
	if r.Contains(s) {
		return errors.New("surface already mounted")
	}
	r.children = append(r.children, s)
	return nil
}

// Remove unmounts s. Unknown surfaces are ignored.
func (r *Region) Remove(s Surface) {
	if i := slices.Index(r.children, s); i >= 0 {
		r.children = slices.Delete(r.children, i, i+1)
	}
}

func (r *Region) Contains(s Surface) bool {
	return slices.Contains(r.children, s)
}

// Children returns the mounted surfaces in mount order.
func (r *Region) Children() []Surface {
	return slices.Clone(r.children)
}
