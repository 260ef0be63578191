package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ambient/ecs"
	"github.com/plus3/ambient/engine"
)

// Source is what the overlay reads from and controls.
type Source interface {
	Stats() engine.Stats
	SchedulerStats() (update, render *ecs.SchedulerStats)
	StorageStats() *ecs.StorageStats
	SetVisible(visible bool)
}

// FieldWindow shows the particle field counters and a pause toggle.
type FieldWindow struct {
	source Source
	paused bool
}

func (w *FieldWindow) Render() {
	if !imgui.BeginV("Field", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	stats := w.source.Stats()
	imgui.Text(fmt.Sprintf("State: %s", stats.State))
	imgui.Text(fmt.Sprintf("Viewport: %dx%d", stats.Width, stats.Height))
	imgui.Text(fmt.Sprintf("Points: %d", stats.Points))
	imgui.Text(fmt.Sprintf("Connections: %d", stats.Connections))
	imgui.Text(fmt.Sprintf("Recomputes: %d", stats.Recomputes))
	imgui.Text(fmt.Sprintf("Frames: %d (skipped %d)", stats.Frames, stats.Skipped))
	imgui.Text(fmt.Sprintf("Elapsed: %.3f  Rotation: %.4f rad", stats.Elapsed, stats.Rotation))
	if stats.RenderFailures > 0 {
		imgui.Text(fmt.Sprintf("Render failures: %d", stats.RenderFailures))
	}

	imgui.Separator()
	if imgui.Checkbox("Pause", &w.paused) {
		w.source.SetVisible(!w.paused)
	}

	imgui.End()
}

// PerformanceWindow plots frame times and lists per-system timings.
type PerformanceWindow struct {
	source  Source
	history *FrameHistory
	timer   *FrameTimer
}

func (w *PerformanceWindow) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	w.history.Push(w.timer.Delta())
	avg := w.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Text(fmt.Sprintf("Last Tick: %s", w.source.Stats().LastTick))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := w.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	update, render := w.source.SchedulerStats()
	if update != nil && imgui.TreeNodeStr("Update Systems") {
		systemTable("UpdateSystems", update)
		imgui.TreePop()
	}
	if render != nil && imgui.TreeNodeStr("Render Systems") {
		systemTable("RenderSystems", render)
		imgui.TreePop()
	}

	if stats := w.source.StorageStats(); stats != nil && imgui.TreeNodeStr("Scene Storage") {
		imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
			stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprint(arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}

		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func systemTable(id string, stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV(id, 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, s := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(s.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(s.LastDuration.String())
		imgui.TableNextColumn()
		imgui.Text(s.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(s.MaxDuration.String())
	}
	imgui.EndTable()
}
