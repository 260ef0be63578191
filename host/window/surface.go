package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/ambient/surface"
)

// Surface is an offscreen ebiten image the engine draws onto. The game
// composites it over the screen with the frame's opacity.
type Surface struct {
	canvas   *ebiten.Image
	opacity  float32
	released bool
}

var _ surface.Surface = (*Surface)(nil)

func NewSurface(w, h int) (surface.Surface, error) {
	return &Surface{canvas: ebiten.NewImage(max(w, 1), max(h, 1)), opacity: 1}, nil
}

func (s *Surface) Size() (w, h int) {
	if s.released {
		return 0, 0
	}
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Resize(w, h int) {
	if w <= 0 || h <= 0 || s.released {
		return
	}
	if cw, ch := s.Size(); cw == w && ch == h {
		return
	}
	s.canvas.Deallocate()
	s.canvas = ebiten.NewImage(w, h)
}

func (s *Surface) Render(f *surface.Frame) error {
	if s.released {
		return surface.ErrReleased
	}

	s.canvas.Clear()
	s.opacity = f.Opacity

	for _, d := range f.Dots {
		vector.DrawFilledCircle(s.canvas, d.X, d.Y, max(d.Radius, 0.5), d.Color, true)
	}
	for _, seg := range f.Segments {
		vector.StrokeLine(s.canvas, seg.X0, seg.Y0, seg.X1, seg.Y1, 1, f.LineColor, true)
	}
	return nil
}

func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.canvas.Deallocate()
}

// Composite draws the canvas onto screen.
func (s *Surface) Composite(screen *ebiten.Image) {
	if s.released {
		return
	}
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleAlpha(s.opacity)
	screen.DrawImage(s.canvas, opts)
}
