package ecs_test

import (
	"testing"

	"github.com/plus3/ambient/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnerSystem struct {
	spawned []ecs.EntityId
}

func (s *spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.SpawnThen(func(id ecs.EntityId) {
		s.spawned = append(s.spawned, id)
	}, Position{X: float32(len(s.spawned))})
}

type reaperSystem struct {
	Glowing ecs.Query[struct {
		ecs.EntityId
		Glow *Glow
	}]
}

func (s *reaperSystem) Execute(frame *ecs.UpdateFrame) {
	for id := range s.Glowing.Iter() {
		frame.Commands.Delete(id)
	}
}

func TestCommandsDeferredUntilFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	cmds := &ecs.Commands{}

	cmds.SpawnThen(nil, Position{X: 1})
	cmds.SpawnThen(nil, Position{X: 2})
	assert.Zero(t, storage.CollectStats().TotalEntityCount)

	cmds.Flush(storage)
	assert.Equal(t, 2, storage.CollectStats().TotalEntityCount)

	cmds.Flush(storage)
	assert.Equal(t, 2, storage.CollectStats().TotalEntityCount, "flush empties the buffer")
}

func TestCommandsFlushOrderReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Glow{Intensity: 1})

	var order []string
	cmds := &ecs.Commands{}
	cmds.Defer(func() {
		order = append(order, "defer")
		// the spawn took over the freed slot, so the old id names the new entity
		assert.True(t, storage.Alive(old))
	})
	cmds.SpawnThen(func(id ecs.EntityId) {
		order = append(order, "spawn")
		assert.Equal(t, old, id, "delete should free the slot before spawning")
	}, Glow{Intensity: 2})
	cmds.Delete(old)

	cmds.Flush(storage)

	assert.Equal(t, []string{"spawn", "defer"}, order)
	assert.Equal(t, float32(2), ecs.ReadComponent[Glow](storage, old).Intensity)
}

func TestCommandsFromSystems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	spawner := &spawnerSystem{}
	scheduler.Register(spawner)
	scheduler.Register(&reaperSystem{})

	storage.Spawn(Glow{})
	storage.Spawn(Glow{})

	scheduler.Once(0.016)

	require.Len(t, spawner.spawned, 1)
	assert.True(t, storage.Alive(spawner.spawned[0]))

	stats := storage.CollectStats()
	assert.Equal(t, 1, stats.TotalEntityCount, "glowing entities should be reaped")
}
