// Package window hosts the engine in a desktop window.
package window

import (
	"image/color"
	"io"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/plus3/ambient/debugui"
	debugui_ebiten "github.com/plus3/ambient/debugui/ebiten"
	"github.com/plus3/ambient/engine"
	"github.com/plus3/ambient/frame"
	"github.com/plus3/ambient/surface"
)

type Options struct {
	Title         string
	Width, Height int
	Background    color.NRGBA
	Config        engine.Config

	// IdlePause stops animating while the window is not focused.
	IdlePause bool
	// Debug adds the imgui statistics overlay.
	Debug bool

	Logger *log.Logger
	Rand   *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "ambient"
	}
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o
}

// Game implements ebiten.Game. Each Update pumps the frame loop once, which
// ticks the engine.
type Game struct {
	opts   Options
	loop   *frame.Loop
	region *surface.Region
	engine *engine.Engine

	imgui   *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay

	err error
}

func NewGame(opts Options) *Game {
	opts = opts.withDefaults()

	engineOpts := []engine.Option{engine.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		engineOpts = append(engineOpts, engine.WithRand(opts.Rand))
	}

	g := &Game{
		opts:   opts,
		loop:   frame.NewLoop(),
		region: surface.NewRegion(0, 0, NewSurface),
	}
	g.engine = engine.New(g.loop, opts.Config, engineOpts...)
	return g
}

// Engine returns the engine the game drives.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.opts.IdlePause {
		g.engine.SetVisible(ebiten.IsFocused())
	}

	if g.imgui != nil {
		g.imgui.Frame(func() {
			g.overlay.Update(1.0 / float64(ebiten.TPS()))
		})
	}

	g.loop.Pump()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)

	for _, child := range g.region.Children() {
		if s, ok := child.(*Surface); ok {
			s.Composite(screen)
		}
	}

	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

// Layout attaches the engine on the first call, once the window size is
// known, and forwards later size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}

	if w, h := g.region.Size(); w == outsideWidth && h == outsideHeight {
		return outsideWidth, outsideHeight
	}
	g.region.SetSize(outsideWidth, outsideHeight)

	switch g.engine.State() {
	case engine.Uninitialized:
		if err := g.engine.Attach(g.region); err != nil {
			g.err = errors.Wrap(err, "attach engine")
		}
	case engine.Running:
		g.engine.OnResize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := NewGame(opts)
	defer g.engine.Detach()

	if g.opts.Debug {
		g.imgui = debugui_ebiten.NewImguiBackend(g.opts.Title, g.opts.Width, g.opts.Height)
		g.overlay = debugui.NewOverlay(g.engine, debugui.DefaultHistoryFrames)
	} else {
		ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
		ebiten.SetWindowTitle(g.opts.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.opts.Logger.Printf("opening %dx%d window", g.opts.Width, g.opts.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
