package ecs_test

import (
	"testing"

	"github.com/plus3/ambient/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSpawnAndRead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1, Y: 2, Z: 3}, Velocity{DX: 1})
	b := storage.Spawn(Position{X: 4}, Velocity{DY: 1})
	c := storage.Spawn(Position{X: 7})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())

	pos := ecs.ReadComponent[Position](storage, a)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, *pos)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, c))
	assert.NotNil(t, ecs.ReadComponent[Velocity](storage, a))
}

func TestStorageComponentOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Glow{})
	b := storage.Spawn(Glow{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
}

func TestStorageDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2})
	require.True(t, storage.Alive(a))

	storage.Delete(a)
	assert.False(t, storage.Alive(a))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))

	c := storage.Spawn(Position{X: 3})
	assert.Equal(t, a, c, "freed slot should be reused")
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, c).X)

	// unknown ids are ignored
	storage.Delete(ecs.NewEntityId(12345, 0))
}

func TestStoragePointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 42})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	assert.Same(t, ptr, ecs.ReadComponent[Position](storage, first))
	assert.Equal(t, float32(42), ptr.X)
}

func TestStorageSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	glow := ecs.NewSingleton[Glow](storage, Glow{Intensity: 0.5})
	ptr := glow.Get()
	require.NotNil(t, ptr)
	assert.Equal(t, float32(0.5), ptr.Intensity)

	// an existing singleton is not replaced by a later accessor
	again := ecs.NewSingleton[Glow](storage, Glow{Intensity: 0.1})
	assert.Same(t, ptr, again.Get())
	assert.Equal(t, float32(0.5), again.Get().Intensity)

	// overwriting keeps the address stable
	storage.AddSingleton(Glow{Intensity: 0.9})
	assert.Same(t, ptr, glow.Get())
	assert.Equal(t, float32(0.9), ptr.Intensity)

	storage.Clear()
	assert.Nil(t, glow.Get())
}

func TestStorageClear(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Spin{})
	ecs.NewSingleton[Glow](storage, Glow{Intensity: 1})

	storage.Clear()

	assert.False(t, storage.Alive(id))
	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
}
