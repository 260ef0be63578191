// Package config loads and writes the YAML settings file.
package config

import (
	"image/color"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/plus3/ambient/engine"
	"github.com/plus3/ambient/field"
)

type Settings struct {
	Field     FieldSettings    `yaml:"field"`
	Render    RenderSettings   `yaml:"render"`
	Window    WindowSettings   `yaml:"window"`
	Terminal  TerminalSettings `yaml:"terminal"`
	IdlePause bool             `yaml:"idle_pause"`
}

type FieldSettings struct {
	Points         int      `yaml:"points"`
	Extent         float32  `yaml:"extent"`
	MaxSize        float32  `yaml:"max_size"`
	Amplitude      float32  `yaml:"amplitude"`
	TimeStep       float64  `yaml:"time_step"`
	RotationStep   float64  `yaml:"rotation_step"`
	Threshold      float32  `yaml:"threshold"`
	RecomputeEvery int      `yaml:"recompute_every"`
	Palette        []string `yaml:"palette"`
}

type RenderSettings struct {
	FOV           float64 `yaml:"fov"`
	Near          float64 `yaml:"near"`
	Far           float64 `yaml:"far"`
	CameraZ       float64 `yaml:"camera_z"`
	PointScale    float32 `yaml:"point_scale"`
	PointOpacity  float32 `yaml:"point_opacity"`
	LineColor     string  `yaml:"line_color"`
	LineOpacity   float32 `yaml:"line_opacity"`
	CanvasOpacity float32 `yaml:"canvas_opacity"`
	Background    string  `yaml:"background"`
}

type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Debug  bool   `yaml:"debug"`
}

type TerminalSettings struct {
	FPS int `yaml:"fps"`
	// LogFile receives log output while the terminal is in use. Empty
	// discards it.
	LogFile string `yaml:"log_file"`
}

// Default returns settings that reproduce engine.DefaultConfig.
func Default() *Settings {
	cfg := engine.DefaultConfig()
	return &Settings{
		Field: FieldSettings{
			Points:         cfg.Points,
			Extent:         cfg.Extent,
			MaxSize:        cfg.MaxSize,
			Amplitude:      cfg.Amplitude,
			TimeStep:       cfg.TimeStep,
			RotationStep:   cfg.RotationStep,
			Threshold:      cfg.Threshold,
			RecomputeEvery: cfg.RecomputeEvery,
			Palette:        cfg.Palette.Hex(),
		},
		Render: RenderSettings{
			FOV:           cfg.FOV,
			Near:          cfg.Near,
			Far:           cfg.Far,
			CameraZ:       cfg.CameraZ,
			PointScale:    cfg.PointScale,
			PointOpacity:  cfg.PointOpacity,
			LineColor:     cfg.LineColor.Hex(),
			LineOpacity:   cfg.LineOpacity,
			CanvasOpacity: cfg.CanvasOpacity,
			Background:    "#0a0a14",
		},
		Window: WindowSettings{
			Title:  "ambient",
			Width:  1280,
			Height: 720,
		},
		Terminal: TerminalSettings{
			FPS: 30,
		},
		IdlePause: true,
	}
}

// DefaultPath is settings.yaml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locate config dir")
	}
	return filepath.Join(dir, "ambient", "settings.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
// Keys the settings do not know are logged and ignored.
func Load(path string, logger *log.Logger) (*Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	for _, key := range UnknownKeys(raw, reflect.TypeFor[Settings]()) {
		logger.Printf("Warning: unrecognised setting key '%s' in %s", key, path)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return settings, nil
}

// Write stores s at path, creating parent directories.
func Write(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

// UnknownKeys lists dotted keys of raw that have no yaml field in t.
func UnknownKeys(raw map[string]any, t reflect.Type) []string {
	var unknown []string
	collectUnknown(raw, t, "", &unknown)
	sort.Strings(unknown)
	return unknown
}

func collectUnknown(raw map[string]any, t reflect.Type, prefix string, out *[]string) {
	fields := make(map[string]reflect.Type)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		fields[name] = f.Type
	}

	for key, value := range raw {
		ft, ok := fields[key]
		if !ok {
			*out = append(*out, prefix+key)
			continue
		}
		if nested, isMap := value.(map[string]any); isMap && ft.Kind() == reflect.Struct {
			collectUnknown(nested, ft, prefix+key+".", out)
		}
	}
}

// EngineConfig converts the settings and validates the result.
func (s *Settings) EngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()

	palette, err := field.ParsePalette(s.Field.Palette...)
	if err != nil {
		return cfg, errors.Wrap(err, "field.palette")
	}
	lineColor, err := colorful.Hex(s.Render.LineColor)
	if err != nil {
		return cfg, errors.Wrap(err, "render.line_color")
	}

	cfg.Points = s.Field.Points
	cfg.Palette = palette
	cfg.Extent = s.Field.Extent
	cfg.MaxSize = s.Field.MaxSize
	cfg.Amplitude = s.Field.Amplitude
	cfg.TimeStep = s.Field.TimeStep
	cfg.RotationStep = s.Field.RotationStep
	cfg.Threshold = s.Field.Threshold
	cfg.RecomputeEvery = s.Field.RecomputeEvery

	cfg.FOV = s.Render.FOV
	cfg.Near = s.Render.Near
	cfg.Far = s.Render.Far
	cfg.CameraZ = s.Render.CameraZ
	cfg.PointScale = s.Render.PointScale
	cfg.PointOpacity = s.Render.PointOpacity
	cfg.LineColor = lineColor
	cfg.LineOpacity = s.Render.LineOpacity
	cfg.CanvasOpacity = s.Render.CanvasOpacity

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Background parses render.background.
func (s *Settings) Background() (color.NRGBA, error) {
	c, err := colorful.Hex(s.Render.Background)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(err, "render.background")
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
