package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// minDotRadius keeps every dot over at least one pixel centre.
const minDotRadius = 0.75

// Raster renders frames in software through a 2D canvas. The frame is drawn
// onto a transparent layer which Image composites over the background at
// the frame's opacity.
type Raster struct {
	backend    *softwarebackend.SoftwareBackend
	cv         *canvas.Canvas
	background color.NRGBA
	opacity    float32
	released   bool
}

var _ Surface = (*Raster)(nil)

func NewRaster(w, h int) *Raster {
	backend := softwarebackend.New(max(w, 1), max(h, 1))
	return &Raster{
		backend:    backend,
		cv:         canvas.New(backend),
		background: color.NRGBA{A: 255},
		opacity:    1,
	}
}

// SetBackground sets the color the layer is composited over.
func (r *Raster) SetBackground(c color.NRGBA) {
	r.background = c
}

func (r *Raster) Size() (w, h int) {
	if r.released {
		return 0, 0
	}
	b := r.backend.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Resize(w, h int) {
	if w <= 0 || h <= 0 || r.released {
		return
	}
	if cw, ch := r.Size(); cw == w && ch == h {
		return
	}
	r.backend.SetSize(w, h)
}

func (r *Raster) Render(f *Frame) error {
	if r.released {
		return ErrReleased
	}

	w, h := r.Size()
	r.cv.ClearRect(0, 0, float64(w), float64(h))
	r.opacity = f.Opacity

	for _, d := range f.Dots {
		r.cv.SetFillStyle(rgba(d.Color))
		r.cv.BeginPath()
		r.cv.Arc(float64(d.X), float64(d.Y), float64(max(d.Radius, minDotRadius)), 0, 2*math.Pi, false)
		r.cv.Fill()
	}

	if len(f.Segments) > 0 {
		r.cv.SetStrokeStyle(rgba(f.LineColor))
		r.cv.SetLineWidth(1)
		r.cv.BeginPath()
		for _, s := range f.Segments {
			r.cv.MoveTo(float64(s.X0), float64(s.Y0))
			r.cv.LineTo(float64(s.X1), float64(s.Y1))
		}
		r.cv.Stroke()
	}
	return nil
}

func (r *Raster) Release() {
	if r.released {
		return
	}
	r.released = true
	r.cv = nil
	r.backend = nil
}

// Released reports whether Release has been called.
func (r *Raster) Released() bool {
	return r.released
}

// Layer returns the transparent layer the last frame was drawn onto.
func (r *Raster) Layer() *image.RGBA {
	if r.released {
		return image.NewRGBA(image.Rectangle{})
	}
	return r.backend.Image
}

// Image returns the last frame composited over the background.
func (r *Raster) Image() (*image.RGBA, error) {
	if r.released {
		return nil, ErrReleased
	}

	w, h := r.Size()
	out := softwarebackend.New(w, h)
	cv := canvas.New(out)

	cv.SetFillStyle(rgba(r.background))
	cv.FillRect(0, 0, float64(w), float64(h))

	layer, err := cv.LoadImage(r.backend.Image)
	if err != nil {
		return nil, errors.Wrap(err, "load layer")
	}
	defer layer.Delete()

	cv.SetGlobalAlpha(float64(min(max(r.opacity, 0), 1)))
	cv.DrawImage(layer, 0, 0, float64(w), float64(h))
	return out.Image, nil
}

// WritePNG encodes Image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	img, err := r.Image()
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "encode png")
}

// rgba formats c as a CSS color for the canvas.
func rgba(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
