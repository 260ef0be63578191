// Package engine drives the ambient backdrop: it owns the scene for one
// surface, advances it once per display refresh and tears it down again.
package engine

import (
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/plus3/ambient/ecs"
	"github.com/plus3/ambient/field"
	"github.com/plus3/ambient/frame"
	"github.com/plus3/ambient/surface"
)

var (
	ErrAttached    = errors.New("engine already attached")
	ErrDisposed    = errors.New("engine disposed")
	ErrNoContainer = errors.New("no container")
)

// State is the engine lifecycle. Uninitialized -> Running -> Disposed, or
// Uninitialized -> Disposed. Disposed is terminal.
type State int

const (
	Uninitialized State = iota
	Running
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Disposed:
		return "disposed"
	}
	return "unknown"
}

// Container is the host region an engine mounts its surface into.
type Container interface {
	Size() (w, h int)
	NewSurface(w, h int) (surface.Surface, error)
	Append(s surface.Surface) error
	Remove(s surface.Surface)
	Contains(s surface.Surface) bool
}

type Option func(*Engine)

// WithRand sets the random source used to generate the field.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets where lifecycle events and render errors are logged.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine renders one particle field onto one surface. All methods must be
// called from the goroutine that pumps the frame scheduler.
type Engine struct {
	cfg    Config
	frames frame.Scheduler
	rng    *rand.Rand
	logger *log.Logger

	state     State
	container Container
	surface   surface.Surface

	storage *ecs.Storage
	update  *ecs.Scheduler
	render  *ecs.Scheduler

	clock       *ecs.Singleton[Clock]
	rotation    *ecs.Singleton[Rotation]
	camera      *ecs.Singleton[Camera]
	connections *ecs.Singleton[Connections]
	output      *ecs.Singleton[Output]
	clouds      *ecs.Query[struct{ Cloud *PointCloud }]

	pending      frame.Handle
	inTick       bool
	releaseAfter bool
	hidden       bool
	skipped      uint64
	lastTick     time.Duration
}

// New creates an engine in the Uninitialized state. Nothing is allocated
// until Attach.
func New(frames frame.Scheduler, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		frames: frames,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

func (e *Engine) State() State {
	return e.state
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Attach creates a surface sized to c, mounts it, builds the scene and
// schedules the first tick. If the surface cannot be acquired or mounted
// the engine stays Uninitialized and nothing is left behind.
func (e *Engine) Attach(c Container) error {
	switch e.state {
	case Running:
		return ErrAttached
	case Disposed:
		return ErrDisposed
	}
	if c == nil {
		return ErrNoContainer
	}
	if err := e.cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	w, h := c.Size()
	w, h = max(w, 1), max(h, 1)

	s, err := c.NewSurface(w, h)
	if err != nil {
		return errors.Wrap(err, "acquire surface")
	}
	if s == nil {
		return errors.New("container returned no surface")
	}
	if err := c.Append(s); err != nil {
		s.Release()
		return errors.Wrap(err, "mount surface")
	}

	e.container = c
	e.surface = s
	e.buildScene(w, h)
	e.state = Running
	e.pending = e.frames.Request(e.tick)

	e.logger.Printf("attached %dx%d surface, %d points, %d connections",
		w, h, e.cfg.Points, e.connections.Get().Graph.Len())
	return nil
}

func (e *Engine) buildScene(w, h int) {
	e.storage = ecs.NewStorage(newRegistry())

	set := field.Generate(e.cfg.Points, e.cfg.Palette, e.cfg.generateOptions(), e.rng)
	graph := field.Connect(set.Positions, e.cfg.Threshold)

	e.clock = ecs.NewSingleton[Clock](e.storage)
	e.rotation = ecs.NewSingleton[Rotation](e.storage, Rotation{Step: e.cfg.RotationStep})
	e.camera = ecs.NewSingleton[Camera](e.storage, NewCamera(e.cfg, w, h))
	e.output = ecs.NewSingleton[Output](e.storage, Output{
		Surface: e.surface,
		Opacity: e.cfg.CanvasOpacity,
	})

	e.storage.Spawn(
		PointCloud{Set: set, Amplitude: e.cfg.Amplitude, Material: e.cfg.pointMaterial()},
		Transform{},
	)
	lines := e.storage.Spawn(
		LineSegments{Graph: graph, Material: e.cfg.lineMaterial()},
		Transform{},
	)
	e.connections = ecs.NewSingleton[Connections](e.storage, Connections{
		Entity:    lines,
		Graph:     graph,
		Threshold: e.cfg.Threshold,
		Throttle:  field.Throttle{Every: e.cfg.RecomputeEvery},
		Material:  e.cfg.lineMaterial(),
	})

	e.clouds = ecs.NewQuery[struct{ Cloud *PointCloud }](e.storage)

	e.update = ecs.NewScheduler(e.storage)
	e.update.Register(&ClockSystem{})
	e.update.Register(&MotionSystem{})
	e.update.Register(&RotationSystem{})
	e.update.Register(&ProximitySystem{})

	e.render = ecs.NewScheduler(e.storage)
	e.render.Register(&RenderSystem{Logger: e.logger})
}

// tick is one display refresh. The next tick is requested before any work
// is done, so a Detach from inside the tick can cancel it.
func (e *Engine) tick() {
	e.pending = 0
	if e.state != Running {
		return
	}
	e.pending = e.frames.Request(e.tick)

	if e.hidden {
		e.skipped++
		return
	}

	start := time.Now()
	e.inTick = true
	e.update.Once(e.cfg.TimeStep)
	if e.state == Running {
		e.render.Once(e.cfg.TimeStep)
	}
	e.inTick = false
	e.lastTick = time.Since(start)

	if e.releaseAfter {
		e.release()
	}
}

// Detach stops the engine for good. It cancels the pending tick, unmounts
// the surface if the container still holds it and releases it. Calling it
// again does nothing. Detach from inside a tick releases once the tick
// returns.
func (e *Engine) Detach() {
	switch e.state {
	case Disposed:
		return
	case Uninitialized:
		e.state = Disposed
		return
	}

	e.state = Disposed
	if e.pending != 0 {
		e.frames.Cancel(e.pending)
		e.pending = 0
	}

	if e.inTick {
		e.releaseAfter = true
		return
	}
	e.release()
}

func (e *Engine) release() {
	e.releaseAfter = false

	if e.container.Contains(e.surface) {
		e.container.Remove(e.surface)
	}
	e.surface.Release()
	e.storage.Clear()

	e.surface = nil
	e.container = nil
	e.logger.Printf("detached")
}

// OnResize matches the camera and surface to a new host size. Point data is
// left alone. Non-positive or unchanged sizes, and engines that are not
// running, are ignored.
func (e *Engine) OnResize(w, h int) {
	if e.state != Running || w <= 0 || h <= 0 {
		return
	}
	if !e.camera.Get().SetViewport(w, h) {
		return
	}
	e.surface.Resize(w, h)
	e.logger.Printf("resized to %dx%d", w, h)
}

// SetVisible pauses the work of each tick while the host is hidden. Ticks
// keep being scheduled so the engine resumes on the next refresh.
func (e *Engine) SetVisible(visible bool) {
	if e.hidden == !visible {
		return
	}
	e.hidden = !visible
	e.logger.Printf("visible=%v", visible)
}

// PointSet returns the animated field, or nil when not running.
func (e *Engine) PointSet() *field.PointSet {
	if e.state != Running {
		return nil
	}
	e.clouds.Execute()
	for item := range e.clouds.Values() {
		return item.Cloud.Set
	}
	return nil
}

// Surface returns the mounted surface, or nil when not running.
func (e *Engine) Surface() surface.Surface {
	if e.state != Running {
		return nil
	}
	return e.surface
}
