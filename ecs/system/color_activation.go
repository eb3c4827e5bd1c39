package system

import (
	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

// ColorActivationSystem propagates crystal activity to every gate and locked
// door sharing its color. The table is rebuilt from scratch every tick, so a
// channel is open exactly when some crystal of that color is active now.
type ColorActivationSystem struct {
	last [common.NumColorCodes]bool
}

func NewColorActivationSystem() *ColorActivationSystem {
	return &ColorActivationSystem{}
}

func (s *ColorActivationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var activated [common.NumColorCodes]bool
	ecs.ForEach2(w, component.CrystalStateComponent.Kind(), component.ColorCodeComponent.Kind(), func(_ ecs.Entity, crystal *component.CrystalState, code *common.ColorCode) {
		if !code.Valid() || !crystal.Active() {
			return
		}
		activated[code.Index()] = true
	})

	ecs.ForEach2(w, component.GateStateComponent.Kind(), component.ColorCodeComponent.Kind(), func(_ ecs.Entity, gate *component.GateState, code *common.ColorCode) {
		gate.IsOpen = code.Valid() && activated[code.Index()]
	})

	s.last = activated
}

// Activated reports whether c was open after the last Update.
func (s *ColorActivationSystem) Activated(c common.ColorCode) bool {
	if !c.Valid() {
		return false
	}
	return s.last[c.Index()]
}
