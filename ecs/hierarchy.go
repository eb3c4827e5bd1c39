package ecs

import "github.com/milk9111/chromagate/ecs/component"

// SetParent attaches child under parent, replacing any previous parent.
func (w *World) SetParent(child, parent Entity) error {
	if !w.IsAlive(child) || !w.IsAlive(parent) {
		return component.ErrEntityNotAlive
	}
	w.detach(child)
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// Parent returns the parent of e, if it has one.
func (w *World) Parent(e Entity) (Entity, bool) {
	p, ok := w.parents[e]
	return p, ok
}

// Children returns a copy of the direct children of e.
func (w *World) Children(e Entity) []Entity {
	return append([]Entity(nil), w.children[e]...)
}

// DespawnRecursive destroys e and all of its descendants, children first.
// It returns the number of entities destroyed.
func (w *World) DespawnRecursive(e Entity) int {
	if !w.IsAlive(e) {
		return 0
	}
	n := 0
	for _, child := range w.Children(e) {
		n += w.DespawnRecursive(child)
	}
	if w.DestroyEntity(e) {
		n++
	}
	return n
}

func (w *World) detach(child Entity) {
	parent, ok := w.parents[child]
	if !ok {
		return
	}
	delete(w.parents, child)
	siblings := w.children[parent]
	for i, s := range siblings {
		if s == child {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(w.children, parent)
		return
	}
	w.children[parent] = siblings
}
