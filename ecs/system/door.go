package system

import (
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

// DoorSystem emits a LevelChangeRequest when the player stands in an open
// door. At most one request is outstanding at a time.
type DoorSystem struct{}

func NewDoorSystem() *DoorSystem { return &DoorSystem{} }

func (s *DoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if _, pending := w.First(component.LevelChangeRequestComponent.Kind()); pending {
		return
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerBox, ok := boundsOf(w, player)
	if !ok {
		return
	}

	for _, e := range w.Query(component.DoorComponent.Kind(), component.TransformComponent.Kind()) {
		if gate, locked := ecs.Get(w, e, component.GateStateComponent.Kind()); locked && !gate.IsOpen {
			continue
		}
		box, ok := boundsOf(w, e)
		if !ok || !box.overlaps(playerBox) {
			continue
		}

		door, _ := ecs.Get(w, e, component.DoorComponent.Kind())
		req := w.CreateEntity()
		if err := ecs.Add(w, req, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{TargetLevel: door.TargetLevel}); err != nil {
			panic("door system: add level change request: " + err.Error())
		}
		return
	}
}

// TakeLevelChangeRequest removes the outstanding request, if any, and returns
// its target.
func TakeLevelChangeRequest(w *ecs.World) (string, bool) {
	e, ok := w.First(component.LevelChangeRequestComponent.Kind())
	if !ok {
		return "", false
	}
	req, _ := ecs.Get(w, e, component.LevelChangeRequestComponent.Kind())
	target := req.TargetLevel
	w.DestroyEntity(e)
	return target, true
}
