package ecs

import "reflect"

// Singleton gives a system direct access to one component instance that is
// not attached to any entity: clocks, cameras, output handles.
type Singleton[T any] struct {
	storage       *Storage
	entry         *singletonEntry
	componentType reflect.Type
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) if storage does not have one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	if storage.getSingletonEntry(componentType) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	return &Singleton[T]{
		storage:       storage,
		entry:         storage.getSingletonEntry(componentType),
		componentType: componentType,
	}
}

// Init binds the accessor to storage. The Scheduler calls it during Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.entry = storage.getSingletonEntry(s.componentType)
}

// Get returns the singleton, or nil if it is not in storage.
func (s *Singleton[T]) Get() *T {
	if !s.refresh() {
		return nil
	}
	return (*T)(s.entry.dataPtr)
}

func (s *Singleton[T]) refresh() bool {
	if s.storage == nil {
		return false
	}
	current := s.storage.getSingletonEntry(s.componentType)
	s.entry = current
	return current != nil
}
