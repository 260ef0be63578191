package ecs

import (
	"testing"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	if stats.ArchetypeCount != 0 {
		t.Errorf("expected 0 archetypes, got %d", stats.ArchetypeCount)
	}
	if stats.TotalEntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 0 {
		t.Errorf("expected 0 singletons, got %d", stats.SingletonCount)
	}

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	deleted := storage.Spawn(7, "gone")
	storage.Spawn(200.0, "test")
	storage.Delete(deleted)

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()

	if stats.ArchetypeCount != 2 {
		t.Errorf("expected 2 archetypes, got %d", stats.ArchetypeCount)
	}
	if stats.TotalEntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 2 {
		t.Errorf("expected 2 singletons, got %d", stats.SingletonCount)
	}
	if len(stats.ArchetypeBreakdown) != 2 {
		t.Fatalf("expected 2 archetype breakdown entries, got %d", len(stats.ArchetypeBreakdown))
	}
	if stats.ArchetypeBreakdown[0].ID > stats.ArchetypeBreakdown[1].ID {
		t.Errorf("expected archetypes ordered by id")
	}

	counts := map[int]bool{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = true
		if len(arch.ComponentTypes) != 2 {
			t.Errorf("expected 2 component types, got %v", arch.ComponentTypes)
		}
	}
	if !counts[2] || !counts[1] {
		t.Errorf("expected archetypes with 2 and 1 entities, got %+v", stats.ArchetypeBreakdown)
	}

	if len(stats.SingletonTypes) != 2 || stats.SingletonTypes[0] != "float64" || stats.SingletonTypes[1] != "string" {
		t.Errorf("unexpected singleton types %v", stats.SingletonTypes)
	}
}
