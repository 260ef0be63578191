package main

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/plus3/ambient/engine"
	"github.com/plus3/ambient/frame"
	"github.com/plus3/ambient/surface"
)

// headless runs an engine against a software raster with a manual frame
// loop, as fast as the caller pumps it.
type headless struct {
	loop   *frame.Loop
	engine *engine.Engine
	raster *surface.Raster
}

func newHeadless(cfg engine.Config, w, h int, bg color.NRGBA, rng *rand.Rand, logger *log.Logger) (*headless, error) {
	hl := &headless{loop: frame.NewLoop()}
	region := surface.NewRegion(w, h, func(w, h int) (surface.Surface, error) {
		hl.raster = surface.NewRaster(w, h)
		hl.raster.SetBackground(bg)
		return hl.raster, nil
	})

	opts := []engine.Option{engine.WithLogger(logger)}
	if rng != nil {
		opts = append(opts, engine.WithRand(rng))
	}
	hl.engine = engine.New(hl.loop, cfg, opts...)
	if err := hl.engine.Attach(region); err != nil {
		return nil, errors.Wrap(err, "attach headless engine")
	}
	return hl, nil
}

// step runs one tick.
func (hl *headless) step() {
	hl.loop.Pump()
}

func (hl *headless) close() {
	hl.engine.Detach()
}
