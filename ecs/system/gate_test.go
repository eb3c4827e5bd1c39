package system

import (
	"math"
	"testing"

	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

func TestApproach(t *testing.T) {
	tests := []struct {
		name                   string
		current, target, speed float64
		want                   float64
	}{
		{name: "step up", current: 0, target: 10, speed: 1, want: 1},
		{name: "step down", current: 10, target: 0, speed: 1, want: 9},
		{name: "snap inside two steps", current: 85, target: 84, speed: 1, want: 84},
		{name: "exactly two steps still steps", current: 86, target: 84, speed: 1, want: 85},
		{name: "at target", current: 84, target: 84, speed: 1, want: 84},
		{name: "zero speed holds", current: 84, target: 100, speed: 0, want: 84},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := approach(tc.current, tc.target, tc.speed); got != tc.want {
				t.Fatalf("approach(%v, %v, %v) = %v, want %v", tc.current, tc.target, tc.speed, got, tc.want)
			}
		})
	}
}

func addMovingGate(t *testing.T, w *ecs.World, y, travel, rate float64) ecs.Entity {
	t.Helper()
	e := addGate(t, w, common.ColorRed, y)
	if err := ecs.Add(w, e, component.GateMotionComponent.Kind(), &component.GateMotion{TravelDistance: travel, Rate: rate}); err != nil {
		t.Fatalf("add gate motion: %v", err)
	}
	return e
}

func TestGateMotionOpensAndCloses(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(1)
	gate := addMovingGate(t, w, 100, 16, 1)
	state, _ := ecs.Get(w, gate, component.GateStateComponent.Kind())
	transform, _ := ecs.Get(w, gate, component.TransformComponent.Kind())
	sys := NewGateMotionSystem()

	state.IsOpen = true
	want := []float64{99, 98, 97, 96, 95, 94, 93, 92, 91, 90, 89, 88, 87, 86, 85, 84, 84}
	for i, y := range want {
		sys.Update(w)
		if transform.Y != y {
			t.Fatalf("open tick %d: y = %v, want %v", i, transform.Y, y)
		}
	}
	if transform.X != 5 {
		t.Fatalf("expected x untouched, got %v", transform.X)
	}

	state.IsOpen = false
	for i := 0; i < 32; i++ {
		sys.Update(w)
	}
	if transform.Y != 100 {
		t.Fatalf("expected gate back at rest, got %v", transform.Y)
	}
	if state.ClosedY != 100 {
		t.Fatalf("expected rest position unchanged, got %v", state.ClosedY)
	}
}

func TestGateMotionConvergesForFractionalSpeeds(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(1.0 / 60.0)
	gate := addMovingGate(t, w, common.TileSize*10.5, common.TileSize, 2*common.TileSize)
	state, _ := ecs.Get(w, gate, component.GateStateComponent.Kind())
	transform, _ := ecs.Get(w, gate, component.TransformComponent.Kind())
	state.IsOpen = true

	sys := NewGateMotionSystem()
	target := state.ClosedY - common.TileSize
	prev := math.Abs(transform.Y - target)
	for i := 0; i < 60; i++ {
		sys.Update(w)
		dist := math.Abs(transform.Y - target)
		if prev > 0 && dist >= prev {
			t.Fatalf("tick %d: distance did not shrink from %v to %v", i, prev, dist)
		}
		if transform.Y < target {
			t.Fatalf("tick %d: overshot to %v", i, transform.Y)
		}
		prev = dist
	}
	if transform.Y != target {
		t.Fatalf("expected exact landing at %v, got %v", target, transform.Y)
	}
}

func TestGateMotionSkipsLockedDoors(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(1)
	door := addGate(t, w, common.ColorBlue, 100)
	state, _ := ecs.Get(w, door, component.GateStateComponent.Kind())
	state.IsOpen = true

	NewGateMotionSystem().Update(w)
	transform, _ := ecs.Get(w, door, component.TransformComponent.Kind())
	if transform.Y != 100 {
		t.Fatalf("expected door without motion to stay, got %v", transform.Y)
	}
}
