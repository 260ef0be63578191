package engine

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/plus3/ambient/field"
)

// Config holds every tunable of the visualizer. DefaultConfig reproduces the
// stock backdrop.
type Config struct {
	Points  int
	Palette field.Palette
	Extent  float32
	MaxSize float32

	// Amplitude bounds how far a point drifts from its origin per axis.
	Amplitude float32
	// TimeStep is added to the animation clock every tick.
	TimeStep float64
	// RotationStep is added to the scene's Y rotation every tick, radians.
	RotationStep float64

	Threshold      float32
	RecomputeEvery int

	FOV     float64 // vertical, degrees
	Near    float64
	Far     float64
	CameraZ float64

	PointScale    float32
	PointOpacity  float32
	LineColor     colorful.Color
	LineOpacity   float32
	CanvasOpacity float32
}

func DefaultConfig() Config {
	return Config{
		Points:  300,
		Palette: field.DefaultPalette,
		Extent:  field.DefaultExtent,
		MaxSize: field.DefaultMaxSize,

		Amplitude:    field.DefaultAmplitude,
		TimeStep:     0.001,
		RotationStep: 0.0003,

		Threshold:      field.DefaultThreshold,
		RecomputeEvery: field.DefaultRecomputeEvery,

		FOV:     75,
		Near:    0.1,
		Far:     1000,
		CameraZ: 30,

		PointScale:    0.8,
		PointOpacity:  0.6,
		LineColor:     field.DefaultPalette[1],
		LineOpacity:   0.1,
		CanvasOpacity: 0.3,
	}
}

// Validate reports the first setting that cannot produce a picture.
func (c Config) Validate() error {
	switch {
	case c.Points < 0:
		return errors.Errorf("points must not be negative, got %d", c.Points)
	case c.Extent <= 0:
		return errors.Errorf("extent must be positive, got %v", c.Extent)
	case c.MaxSize < 0:
		return errors.Errorf("max size must not be negative, got %v", c.MaxSize)
	case c.TimeStep < 0:
		return errors.Errorf("time step must not be negative, got %v", c.TimeStep)
	case c.Threshold < 0:
		return errors.Errorf("threshold must not be negative, got %v", c.Threshold)
	case c.RecomputeEvery < 1:
		return errors.Errorf("recompute interval must be at least 1, got %d", c.RecomputeEvery)
	case c.FOV <= 0 || c.FOV >= 180:
		return errors.Errorf("fov must be in (0, 180), got %v", c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return errors.Errorf("clip planes must satisfy 0 < near < far, got %v..%v", c.Near, c.Far)
	case c.CameraZ <= c.Near:
		return errors.Errorf("camera distance %v is inside the near plane", c.CameraZ)
	}

	for name, v := range map[string]float32{
		"point opacity":  c.PointOpacity,
		"line opacity":   c.LineOpacity,
		"canvas opacity": c.CanvasOpacity,
	} {
		if v < 0 || v > 1 {
			return errors.Errorf("%s must be in [0, 1], got %v", name, v)
		}
	}
	return nil
}

func (c Config) pointMaterial() Material {
	return Material{
		Size:         c.PointScale,
		Opacity:      c.PointOpacity,
		VertexColors: true,
	}
}

func (c Config) lineMaterial() Material {
	r, g, b := c.LineColor.Clamped().RGB255()
	return Material{
		Color:   color.NRGBA{R: r, G: g, B: b, A: 255},
		Opacity: c.LineOpacity,
	}
}

func (c Config) generateOptions() field.GenerateOptions {
	return field.GenerateOptions{Extent: c.Extent, MaxSize: c.MaxSize}
}
