package engine

import (
	"time"

	"github.com/plus3/ambient/ecs"
)

// Stats is a snapshot of a running engine.
type Stats struct {
	State State

	Frames   uint64
	Skipped  uint64
	Elapsed  float64
	Rotation float64

	Points      int
	Connections int
	Recomputes  uint64

	Width, Height  int
	Rendered       uint64
	RenderFailures uint64
	LastTick       time.Duration
}

// Stats reports the engine's counters. Only State is set before Attach and
// after Detach.
func (e *Engine) Stats() Stats {
	stats := Stats{State: e.state, Skipped: e.skipped, LastTick: e.lastTick}
	if e.state != Running {
		return stats
	}

	if clock := e.clock.Get(); clock != nil {
		stats.Frames = clock.Frame
		stats.Elapsed = clock.Elapsed
	}
	if rot := e.rotation.Get(); rot != nil {
		stats.Rotation = rot.Y
	}
	if conns := e.connections.Get(); conns != nil {
		if lines := ecs.ReadComponent[LineSegments](e.storage, conns.Entity); lines != nil {
			stats.Connections = lines.Graph.Len()
		}
		stats.Recomputes = conns.Recomputes
	}
	if cam := e.camera.Get(); cam != nil {
		stats.Width, stats.Height = cam.Width, cam.Height
	}
	if out := e.output.Get(); out != nil {
		stats.Rendered = out.Rendered
		stats.RenderFailures = out.Failures
	}
	stats.Points = e.PointSet().Len()
	return stats
}

// SchedulerStats returns per-system timings of the update and render
// schedulers, or nils when not running.
func (e *Engine) SchedulerStats() (update, render *ecs.SchedulerStats) {
	if e.state != Running {
		return nil, nil
	}
	return e.update.GetStats(), e.render.GetStats()
}

// StorageStats summarizes the scene storage, or nil when not running.
func (e *Engine) StorageStats() *ecs.StorageStats {
	if e.state != Running {
		return nil
	}
	return e.storage.CollectStats()
}
