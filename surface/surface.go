// Package surface defines drawable targets and the display list rendered
// onto them.
package surface

import (
	"image/color"

	"github.com/pkg/errors"
)

// ErrReleased is returned by Render on a released surface.
var ErrReleased = errors.New("surface released")

// Surface is a drawable region owned by exactly one engine.
type Surface interface {
	// Size returns the drawing buffer size in pixels.
	Size() (w, h int)
	// Resize changes the drawing buffer size. Non-positive sizes are ignored.
	Resize(w, h int)
	// Render replaces the surface contents with f.
	Render(f *Frame) error
	// Release frees the surface's resources. Calling it again does nothing.
	Release()
}

// Dot is a projected point: pixel centre, pixel radius and straight
// (non-premultiplied) color whose alpha is the point opacity.
type Dot struct {
	X, Y   float32
	Radius float32
	Color  color.NRGBA
}

// Segment is a projected line in pixel coordinates.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// Frame is one tick's display list. Dots are drawn first, then segments in
// LineColor. Opacity applies to the whole layer when it is composited.
type Frame struct {
	Width, Height int

	Dots      []Dot
	Segments  []Segment
	LineColor color.NRGBA
	Opacity   float32
}

// Reset empties the display list, keeping its buffers.
func (f *Frame) Reset(w, h int) {
	f.Width, f.Height = w, h
	f.Dots = f.Dots[:0]
	f.Segments = f.Segments[:0]
}

// ScaleAlpha multiplies alpha by opacity, clamped to [0, 1].
func ScaleAlpha(alpha uint8, opacity float32) uint8 {
	v := float32(alpha) * min(max(opacity, 0), 1)
	return uint8(v + 0.5)
}
