package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterDrawsDots(t *testing.T) {
	r := NewRaster(20, 20)
	red := color.NRGBA{R: 255, A: 255}

	require.NoError(t, r.Render(&Frame{
		Width: 20, Height: 20,
		Dots:    []Dot{{X: 10, Y: 10, Radius: 3, Color: red}},
		Opacity: 1,
	}))

	layer := r.Layer()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, layer.RGBAAt(10, 10))
	assert.Zero(t, layer.RGBAAt(0, 0).A)
	assert.Zero(t, layer.RGBAAt(10, 15).A)
}

func TestRasterTinyDotCoversAPixel(t *testing.T) {
	r := NewRaster(4, 4)
	require.NoError(t, r.Render(&Frame{
		Dots:    []Dot{{X: 1.5, Y: 2.5, Radius: 0.1, Color: color.NRGBA{G: 255, A: 255}}},
		Opacity: 1,
	}))
	assert.Equal(t, uint8(255), r.Layer().RGBAAt(1, 2).G)
}

func TestRasterDrawsSegments(t *testing.T) {
	r := NewRaster(10, 10)
	require.NoError(t, r.Render(&Frame{
		Segments:  []Segment{{X0: 0, Y0: 0, X1: 10, Y1: 10}, {X0: -50, Y0: 5.5, X1: 50, Y1: 5.5}},
		LineColor: color.NRGBA{B: 255, A: 255},
		Opacity:   1,
	}))

	layer := r.Layer()
	for i := 0; i < 10; i++ {
		assert.Greater(t, layer.RGBAAt(i, i).B, uint8(128), "diagonal %d", i)
		assert.Greater(t, layer.RGBAAt(i, 5).B, uint8(128), "horizontal %d", i)
	}
	assert.Zero(t, layer.RGBAAt(9, 0).A)
}

func TestRasterDotAlpha(t *testing.T) {
	r := NewRaster(10, 10)
	half := color.NRGBA{R: 255, A: 128}

	require.NoError(t, r.Render(&Frame{
		Dots:    []Dot{{X: 5, Y: 5, Radius: 3, Color: half}},
		Opacity: 1,
	}))

	px := r.Layer().RGBAAt(5, 5)
	assert.InDelta(t, 128, int(px.A), 2)
	assert.InDelta(t, int(px.A), int(px.R), 1, "layer is premultiplied")
}

func TestRasterRenderClearsPreviousFrame(t *testing.T) {
	r := NewRaster(8, 8)
	dot := Dot{X: 4, Y: 4, Radius: 2, Color: color.NRGBA{R: 255, A: 255}}

	require.NoError(t, r.Render(&Frame{Dots: []Dot{dot}, Opacity: 1}))
	require.NotZero(t, r.Layer().RGBAAt(4, 4).A)
	require.NoError(t, r.Render(&Frame{Opacity: 1}))
	assert.Zero(t, r.Layer().RGBAAt(4, 4).A)
}

func TestRasterCompositeOpacity(t *testing.T) {
	r := NewRaster(4, 4)
	r.SetBackground(color.NRGBA{A: 255})

	require.NoError(t, r.Render(&Frame{
		Dots:    []Dot{{X: 2, Y: 2, Radius: 4, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}}},
		Opacity: 0.3,
	}))

	img, err := r.Image()
	require.NoError(t, err)
	px := img.RGBAAt(1, 1)
	assert.InDelta(t, 77, int(px.R), 3)
	assert.Equal(t, uint8(255), px.A)
}

func TestRasterResize(t *testing.T) {
	r := NewRaster(800, 600)
	r.Resize(1920, 1080)
	w, h := r.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	r.Resize(0, 10)
	w, h = r.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestRasterRelease(t *testing.T) {
	r := NewRaster(4, 4)
	r.Release()
	r.Release()

	assert.True(t, r.Released())
	assert.ErrorIs(t, r.Render(&Frame{}), ErrReleased)
	_, err := r.Image()
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, r.WritePNG(&bytes.Buffer{}), ErrReleased)
}

func TestRasterWritePNG(t *testing.T) {
	r := NewRaster(16, 9)
	require.NoError(t, r.Render(&Frame{Opacity: 1}))

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 9, img.Bounds().Dy())
}

func TestScaleAlpha(t *testing.T) {
	assert.Equal(t, uint8(255), ScaleAlpha(255, 1))
	assert.Equal(t, uint8(0), ScaleAlpha(255, 0))
	assert.Equal(t, uint8(255), ScaleAlpha(255, 4))
	assert.Equal(t, uint8(26), ScaleAlpha(255, 0.1))
	assert.Equal(t, uint8(153), ScaleAlpha(255, 0.6))
}
