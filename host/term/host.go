// Package term hosts the engine in a terminal through tcell.
package term

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/plus3/ambient/engine"
	"github.com/plus3/ambient/frame"
	"github.com/plus3/ambient/surface"
)

type Options struct {
	Config engine.Config
	FPS    int
	// IdlePause stops animating while the terminal reports lost focus.
	IdlePause bool

	// Logger must not write to the terminal the screen owns.
	Logger *log.Logger
	Rand   *rand.Rand
}

// Host runs the engine's frame loop against a tcell screen. Events are read
// on their own goroutine and handled on the loop goroutine, which is the
// only one touching the engine.
type Host struct {
	opts   Options
	screen tcell.Screen
	loop   *frame.Loop
	region *surface.Region
	engine *engine.Engine
}

// NewHost wraps an initialized screen. The caller keeps ownership of it.
func NewHost(screen tcell.Screen, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	engineOpts := []engine.Option{engine.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		engineOpts = append(engineOpts, engine.WithRand(opts.Rand))
	}

	loop := frame.NewLoop()
	w, h := PixelSize(screen.Size())
	return &Host{
		opts:   opts,
		screen: screen,
		loop:   loop,
		region: surface.NewRegion(w, h, Factory(screen)),
		engine: engine.New(loop, opts.Config, engineOpts...),
	}
}

// Engine returns the engine the host drives.
func (h *Host) Engine() *engine.Engine {
	return h.engine
}

// Run attaches the engine and pumps frames until ctx is done or the user
// quits. The engine is detached before Run returns.
func (h *Host) Run(ctx context.Context) error {
	if err := h.engine.Attach(h.region); err != nil {
		return errors.Wrap(err, "attach engine")
	}
	defer h.engine.Detach()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.loop.Pump()
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventResize:
		h.screen.Sync()
		w, hh := PixelSize(ev.Size())
		h.region.SetSize(w, hh)
		h.engine.OnResize(w, hh)

	case *tcell.EventFocus:
		if h.opts.IdlePause {
			h.engine.SetVisible(ev.Focused)
		}
	}
	return true
}

// Run opens the terminal, runs a Host until the user quits and restores
// the terminal.
func Run(ctx context.Context, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer screen.Fini()

	screen.HideCursor()
	if opts.IdlePause {
		screen.EnableFocus()
	}

	return NewHost(screen, opts).Run(ctx)
}
