package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ambient/surface"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// cell holds the two stacked pixels of one terminal cell.
type cell struct {
	top, bottom       color.NRGBA
	hasTop, hasBottom bool
	line              bool
}

// Surface draws onto a tcell screen using half blocks, so every cell holds
// two pixels and the surface is twice as tall as it has rows. Opacity is not
// representable; lines are drawn with the dim attribute instead.
type Surface struct {
	screen   tcell.Screen
	cols     int
	rows     int
	cells    []cell
	released bool
}

var _ surface.Surface = (*Surface)(nil)

// NewSurface returns a surface covering cols x rows cells of screen.
func NewSurface(screen tcell.Screen, cols, rows int) *Surface {
	s := &Surface{screen: screen}
	s.resizeCells(max(cols, 1), max(rows, 1))
	return s
}

// Factory adapts NewSurface to a surface.Region. Sizes are in pixels.
func Factory(screen tcell.Screen) surface.Factory {
	return func(w, h int) (surface.Surface, error) {
		return NewSurface(screen, w, (h+1)/2), nil
	}
}

// PixelSize converts a cell count to surface pixels.
func PixelSize(cols, rows int) (w, h int) {
	return cols, rows * 2
}

func (s *Surface) Size() (w, h int) {
	return PixelSize(s.cols, s.rows)
}

func (s *Surface) Resize(w, h int) {
	if w <= 0 || h <= 0 || s.released {
		return
	}
	s.resizeCells(w, (h+1)/2)
}

func (s *Surface) resizeCells(cols, rows int) {
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
}

func (s *Surface) Render(f *surface.Frame) error {
	if s.released {
		return surface.ErrReleased
	}

	clear(s.cells)
	for _, d := range f.Dots {
		s.disc(d)
	}
	for _, seg := range f.Segments {
		s.line(seg, f.LineColor)
	}

	s.flush()
	s.screen.Show()
	return nil
}

func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.cells = nil
}

func (s *Surface) set(x, y int, c color.NRGBA, line bool) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 {
		return
	}
	cl := &s.cells[(y/2)*s.cols+x]
	if y%2 == 0 {
		if line && cl.hasTop {
			return
		}
		cl.top, cl.hasTop = c, true
	} else {
		if line && cl.hasBottom {
			return
		}
		cl.bottom, cl.hasBottom = c, true
	}
	cl.line = cl.line || line
}

// disc plots a point. Radii under a pixel still cover the pixel under the
// centre.
func (s *Surface) disc(d surface.Dot) {
	cx, cy := int(math.Floor(float64(d.X))), int(math.Floor(float64(d.Y)))
	r := int(d.Radius)
	if r < 1 {
		s.set(cx, cy, d.Color, false)
		return
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				s.set(cx+x, cy+y, d.Color, false)
			}
		}
	}
}

func (s *Surface) line(seg surface.Segment, c color.NRGBA) {
	x0, y0 := int(math.Floor(float64(seg.X0))), int(math.Floor(float64(seg.Y0)))
	x1, y1 := int(math.Floor(float64(seg.X1))), int(math.Floor(float64(seg.Y1)))

	limit := 4 * max(s.cols, s.rows*2)
	if outside(x0, limit) || outside(y0, limit) || outside(x1, limit) || outside(y1, limit) {
		return
	}

	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		s.set(x0, y0, c, true)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (dx*i+steps/2*sign(dx))/steps
		y := y0 + (dy*i+steps/2*sign(dy))/steps
		s.set(x, y, c, true)
	}
}

func (s *Surface) flush() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := s.cells[row*s.cols+col]
			style := tcell.StyleDefault
			r := ' '

			switch {
			case cl.hasTop && cl.hasBottom:
				r = upperHalf
				style = style.Foreground(rgb(cl.top)).Background(rgb(cl.bottom))
			case cl.hasTop:
				r = upperHalf
				style = style.Foreground(rgb(cl.top))
			case cl.hasBottom:
				r = lowerHalf
				style = style.Foreground(rgb(cl.bottom))
			}
			if cl.line {
				style = style.Dim(true)
			}
			s.screen.SetContent(col, row, r, nil, style)
		}
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func outside(v, limit int) bool {
	return v < -limit || v > limit
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
