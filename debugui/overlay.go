package debugui

import "github.com/plus3/ambient/ecs"

// DefaultHistoryFrames is how many frame times the plot keeps.
const DefaultHistoryFrames = 120

// Overlay owns the debug windows. Update must be called between the imgui
// backend's BeginFrame and EndFrame.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
}

func NewOverlay(source Source, historyFrames int) *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)

	storage := ecs.NewStorage(registry)
	o := &Overlay{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton[ImguiInputState](storage),
	}

	field := &FieldWindow{source: source}
	perf := &PerformanceWindow{
		source:  source,
		history: NewFrameHistory(historyFrames),
		timer:   NewFrameTimer(),
	}
	storage.Spawn(ImguiItem{Render: field.Render})
	storage.Spawn(ImguiItem{Render: perf.Render})

	o.scheduler.Register(&ImguiSystem{})
	return o
}

// Update builds this frame's widgets.
func (o *Overlay) Update(dt float64) {
	o.scheduler.Once(dt)
}

// WantsInput reports whether imgui is consuming the mouse or keyboard.
func (o *Overlay) WantsInput() bool {
	state := o.input.Get()
	return state.WantCaptureMouse || state.WantCaptureKeyboard
}
