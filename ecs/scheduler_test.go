package ecs_test

import (
	"testing"

	"github.com/plus3/ambient/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movementSystem struct {
	Movers ecs.Query[struct {
		Position *Position
		Velocity *Velocity
	}]
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX * dt
		item.Position.Y += item.Velocity.DY * dt
		item.Position.Z += item.Velocity.DZ * dt
	}
}

type glowCounterSystem struct {
	Total ecs.Singleton[Glow]
	ticks int
}

func (s *glowCounterSystem) Execute(frame *ecs.UpdateFrame) {
	s.ticks++
	if g := s.Total.Get(); g != nil {
		g.Intensity += 1
	}
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "first") }))
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "second") }))

	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}

func TestSchedulerWiresQueries(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})

	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: -1})
	still := storage.Spawn(Position{X: 5})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	pos := ecs.ReadComponent[Position](storage, id)
	assert.InDelta(t, 2.0, pos.X, 1e-6)
	assert.InDelta(t, -1.0, pos.Y, 1e-6)
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, still).X)
}

func TestSchedulerWiresSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	counter := &glowCounterSystem{}
	scheduler.Register(counter)

	// registered before the singleton exists
	scheduler.Once(0)
	assert.Equal(t, 1, counter.ticks)

	glow := ecs.NewSingleton[Glow](storage)
	scheduler.Once(0)
	scheduler.Once(0)

	require.NotNil(t, glow.Get())
	assert.Equal(t, float32(2), glow.Get().Intensity)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&glowCounterSystem{})

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Zero(t, stats.Systems[0].MinDuration)

	for i := 0; i < 3; i++ {
		scheduler.Once(0.1)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "movementSystem", stats.Systems[0].Name)
	assert.Equal(t, "glowCounterSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	}
}

type systemFunc func(*ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) { f(frame) }
