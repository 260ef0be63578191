package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambient/engine"
)

func TestDefaultMatchesEngineDefaults(t *testing.T) {
	cfg, err := Default().EngineConfig()
	require.NoError(t, err)

	want := engine.DefaultConfig()
	assert.Equal(t, want.Points, cfg.Points)
	assert.Equal(t, want.Palette.Hex(), cfg.Palette.Hex())
	assert.Equal(t, want.LineColor.Hex(), cfg.LineColor.Hex())
	assert.Equal(t, want.RecomputeEvery, cfg.RecomputeEvery)
	assert.Equal(t, want.Threshold, cfg.Threshold)
	assert.Equal(t, want.CanvasOpacity, cfg.CanvasOpacity)
}

func TestLoadMissingFile(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
field:
  points: 120
  palette: ["#ff0000", "#00ff00", "#0000ff"]
render:
  canvas_opacity: 0.5
idle_pause: false
`), 0644))

	var logs bytes.Buffer
	settings, err := Load(path, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	assert.Equal(t, 120, settings.Field.Points)
	assert.False(t, settings.IdlePause)
	assert.Equal(t, float32(0.5), settings.Render.CanvasOpacity)
	assert.Equal(t, Default().Field.Threshold, settings.Field.Threshold, "untouched keys keep their defaults")

	cfg, err := settings.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"#ff0000", "#00ff00", "#0000ff"}, cfg.Palette.Hex())
}

func TestLoadWarnsOnUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
field:
  points: 10
  sparkle: true
colour: red
`), 0644))

	var logs bytes.Buffer
	settings, err := Load(path, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Field.Points)
	assert.Contains(t, logs.String(), "'colour'")
	assert.Contains(t, logs.String(), "'field.sparkle'")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field: [unterminated"), 0644))

	_, err := Load(path, log.New(&bytes.Buffer{}, "", 0))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := Default()
	want.Field.Points = 42
	want.Window.Debug = true

	require.NoError(t, Write(path, want))
	got, err := Load(path, log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEngineConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"short palette", func(s *Settings) { s.Field.Palette = []string{"#000000"} }},
		{"bad palette hex", func(s *Settings) { s.Field.Palette[1] = "violet" }},
		{"bad line color", func(s *Settings) { s.Render.LineColor = "#12" }},
		{"invalid engine value", func(s *Settings) { s.Field.RecomputeEvery = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)
			_, err := s.EngineConfig()
			assert.Error(t, err)
		})
	}
}

func TestBackground(t *testing.T) {
	s := Default()
	c, err := s.Background()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x0a), c.R)
	assert.Equal(t, uint8(255), c.A)

	s.Render.Background = "black"
	_, err = s.Background()
	assert.Error(t, err)
}

func TestUnknownKeysSorted(t *testing.T) {
	raw := map[string]any{
		"zeta":   1,
		"window": map[string]any{"width": 10, "alpha": 2},
		"alpha":  3,
	}
	assert.Equal(t, []string{"alpha", "window.alpha", "zeta"}, UnknownKeys(raw, reflect.TypeFor[Settings]()))
}
