package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// ifaceWords is the two-word layout shared by every interface value. The
// data word of a boxed pointer is the pointer itself, and the data word of a
// reflect.Type is its unique *rtype.
type ifaceWords struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Query iterates entities matching the struct T. Each field of T is either a
// pointer to a component type or an EntityId. Named pointer fields tagged
// `ecs:"optional"` are nil when the entity lacks that component.
//
// A Query caches matching archetypes and builds its item list in Execute,
// which the Scheduler calls at the start of every tick.
type Query[T any] struct {
	storage *Storage
	layout  *queryLayout

	archetypes []*Archetype
	generation uint64
	resolved   bool

	entities []EntityId
	items    []T
	valid    bool
}

type queryLayout struct {
	types    []reflect.Type
	optional []bool
	offsets  []uintptr

	hasId    bool
	idOffset uintptr
}

var entityIdType = reflect.TypeFor[EntityId]()

func newQueryLayout[T any]() *queryLayout {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	layout := &queryLayout{}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			layout.hasId = true
			layout.idOffset = field.Offset
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be component pointers or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" on named fields is supported)")
			}
			optional = true
		}

		layout.types = append(layout.types, field.Type.Elem())
		layout.optional = append(layout.optional, optional)
		layout.offsets = append(layout.offsets, field.Offset)
	}
	return layout
}

func (l *queryLayout) matches(archetype *Archetype) bool {
	for i, typ := range l.types {
		if !l.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

func (l *queryLayout) columns(archetype *Archetype) []int {
	cols := make([]int, len(l.types))
	for i, typ := range l.types {
		cols[i] = archetype.column(typ)
	}
	return cols
}

// populate fills the struct at dst for one slot. It returns false if a
// required component is missing.
func (l *queryLayout) populate(dst unsafe.Pointer, archetype *Archetype, slot int, cols []int) bool {
	for i, col := range cols {
		fieldPtr := unsafe.Add(dst, l.offsets[i])

		var component any
		if col >= 0 {
			component = archetype.storages[col].Get(slot)
		}
		if component == nil {
			if !l.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*ifaceWords)(unsafe.Pointer(&component)).data
	}
	if l.hasId {
		*(*EntityId)(unsafe.Add(dst, l.idOffset)) = NewEntityId(archetype.id, uint32(slot))
	}
	return true
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds or rebinds the Query. The Scheduler calls it during Register.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	if q.layout == nil {
		q.layout = newQueryLayout[T]()
	}
	q.archetypes = nil
	q.resolved = false
	q.valid = false
}

func (q *Query[T]) resolveArchetypes() {
	if q.resolved && q.generation == q.storage.generation {
		return
	}
	q.archetypes = q.archetypes[:0]
	for _, archetype := range q.storage.archetypes {
		if q.layout.matches(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}
	q.generation = q.storage.generation
	q.resolved = true
}

// Execute rebuilds the item cache from the current storage contents.
func (q *Query[T]) Execute() {
	q.resolveArchetypes()

	clear(q.items)
	q.entities = q.entities[:0]
	q.items = q.items[:0]

	var item T
	dst := unsafe.Pointer(&item)
	for _, archetype := range q.archetypes {
		if len(archetype.storages) == 0 {
			continue
		}
		cols := q.layout.columns(archetype)
		for slot := range archetype.storages[0].Iter() {
			if !q.layout.populate(dst, archetype, slot, cols) {
				continue
			}
			q.entities = append(q.entities, NewEntityId(archetype.id, uint32(slot)))
			q.items = append(q.items, item)
		}
	}

	q.valid = true
}

// Len returns the number of items found by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.items)
}

// Iter yields entity ids with their items.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.items {
			if !yield(q.entities[i], q.items[i]) {
				return
			}
		}
	}
}

// Values yields items only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
