package ecs

import (
	"fmt"

	"github.com/milk9111/chromagate/ecs/component"
)

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}

// Add inserts or replaces the component of kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s on %v", component.ErrNilComponent, kind, e)
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("%w: %s on %v", component.ErrEntityNotAlive, kind, e)
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return fmt.Errorf("%w: %s registered with another type", component.ErrInvalidComponentKind, kind)
	}
	s.set(e.id(), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind)
}

// Get returns a pointer to the stored component, so callers mutate in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

// ForEach calls fn for each live entity with kind. The id list is copied
// first so fn may add, remove or destroy.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	if sa == nil {
		return
	}
	ids := append([]entityID(nil), sa.ids()...)
	for _, id := range ids {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range w.intersect(sa, sb) {
		a, okA := sa.get(e.id())
		b, okB := sb.get(e.id())
		if !okA || !okB || !w.IsAlive(e) {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range w.intersect(sa, sb, sc) {
		a, okA := sa.get(e.id())
		b, okB := sb.get(e.id())
		c, okC := sc.get(e.id())
		if !okA || !okB || !okC || !w.IsAlive(e) {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false), storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, e := range w.intersect(sa, sb, sc, sd) {
		a, okA := sa.get(e.id())
		b, okB := sb.get(e.id())
		c, okC := sc.get(e.id())
		d, okD := sd.get(e.id())
		if !okA || !okB || !okC || !okD || !w.IsAlive(e) {
			continue
		}
		fn(e, a, b, c, d)
	}
}
