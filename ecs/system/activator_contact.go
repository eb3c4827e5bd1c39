package system

import (
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

// ActivatorContactSystem counts the activators resting on each crystal.
type ActivatorContactSystem struct{}

func NewActivatorContactSystem() *ActivatorContactSystem {
	return &ActivatorContactSystem{}
}

func (s *ActivatorContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	activators := w.Query(component.ActivatorComponent.Kind(), component.TransformComponent.Kind())
	boxes := make([]aabb, 0, len(activators))
	for _, e := range activators {
		if box, ok := boundsOf(w, e); ok {
			boxes = append(boxes, box)
		}
	}

	ecs.ForEach(w, component.CrystalStateComponent.Kind(), func(e ecs.Entity, state *component.CrystalState) {
		box, ok := boundsOf(w, e)
		if !ok {
			state.NumActivators = 0
			return
		}
		if crystal, ok := ecs.Get(w, e, component.CrystalComponent.Kind()); ok {
			box = box.grow(crystal.SensorMargin)
		}

		var n uint
		for _, other := range boxes {
			if box.overlaps(other) {
				n++
			}
		}
		state.NumActivators = n
	})
}
