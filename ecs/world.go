package ecs

import "github.com/milk9111/chromagate/ecs/component"

// World owns entities, their components and the parent/child hierarchy.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store

	parents  map[Entity]Entity
	children map[Entity][]Entity

	delta float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]store),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e, detaches it from its parent and
// marks it dead. Children are orphaned, not destroyed; see DespawnRecursive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	w.detach(e)
	for _, child := range w.children[e] {
		delete(w.parents, child)
	}
	delete(w.children, e)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.count
}

// SetDelta records the duration of the current tick in seconds.
func (w *World) SetDelta(dt float64) {
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
}

// Delta returns the duration of the current tick in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// HasComponent reports whether e is alive and carries a component of kind.
func (w *World) HasComponent(e Entity, kind component.AnyKind) bool {
	if !w.IsAlive(e) {
		return false
	}
	s, ok := w.stores[kind.ID()]
	return ok && s.has(e.id())
}

// RemoveComponent removes a component of kind from e.
func (w *World) RemoveComponent(e Entity, kind component.AnyKind) bool {
	if !w.IsAlive(e) {
		return false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return false
	}
	return s.remove(e.id())
}

// Query returns live entities that carry every kind given. It returns nil
// when any kind has no store yet.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	return w.intersect(stores...)
}

// First returns any live entity carrying kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, id := range s.ids() {
		if e, ok := w.entities.current(id); ok {
			return e, true
		}
	}
	return 0, false
}

func (w *World) intersect(stores ...store) []Entity {
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.len())
	for _, id := range smallest.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		all := true
		for _, s := range stores {
			if s != smallest && !s.has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity destroys e in w.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is alive in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns the live entities of w.
func Entities(w *World) []Entity {
	return w.Entities()
}
