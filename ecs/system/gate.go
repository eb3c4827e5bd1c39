package system

import (
	"math"

	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

// GateMotionSystem moves each gate's Transform.Y toward its open or closed
// position at a fixed rate. PhysicsSystem carries the body along.
type GateMotionSystem struct{}

func NewGateMotionSystem() *GateMotionSystem { return &GateMotionSystem{} }

func (s *GateMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach3(w, component.GateStateComponent.Kind(), component.GateMotionComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, gate *component.GateState, motion *component.GateMotion, t *component.Transform) {
		t.Y = approach(t.Y, gate.TargetY(motion.TravelDistance), dt*motion.Rate)
	})
}

// approach returns current moved one step of size speed toward target. Within
// two steps of the target it lands exactly so it never oscillates.
func approach(current, target, speed float64) float64 {
	diff := target - current
	if math.Abs(diff) < 2*speed {
		return target
	}
	if diff > 0 {
		return current + speed
	}
	return current - speed
}
