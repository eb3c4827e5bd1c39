package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
	"github.com/milk9111/chromagate/levels"
)

func TestPopulateEmbeddedLevel(t *testing.T) {
	lvl, err := levels.LoadLevel("level1.json")
	if err != nil {
		t.Fatalf("load level1: %v", err)
	}

	w := ecs.NewWorld()
	root, err := PopulateLevel(w, lvl, "level1.json")
	if err != nil {
		t.Fatalf("populate: %v", err)
	}

	if got, want := CountLevelOwned(w), len(lvl.Entities)+1; got != want {
		t.Fatalf("expected %d level-owned entities, got %d", want, got)
	}
	if got := len(w.Children(root)); got != len(lvl.Entities) {
		t.Fatalf("expected %d children of root, got %d", len(lvl.Entities), got)
	}
	bounds, ok := ecs.Get(w, root, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width != float64(lvl.Width)*common.TileSize {
		t.Fatalf("expected level bounds on root, got %+v ok=%v", bounds, ok)
	}
	if _, ok := w.First(component.PlayerTagComponent.Kind()); !ok {
		t.Fatalf("expected a player")
	}

	if n := DespawnLevel(w); n != len(lvl.Entities)+1 {
		t.Fatalf("expected %d despawned, got %d", len(lvl.Entities)+1, n)
	}
	if got := CountLevelOwned(w); got != 0 {
		t.Fatalf("expected no level-owned entities, got %d", got)
	}
	if w.Len() != 0 {
		t.Fatalf("expected empty world, got %d", w.Len())
	}
}

func TestPopulateSkipsUnknownTypes(t *testing.T) {
	lvl := &levels.Level{
		Name: "odd",
		Entities: []levels.Entity{
			{Type: "lava"},
			{Type: "Crate", Position: levels.Position{X: 1, Y: 1}},
		},
	}
	w := ecs.NewWorld()
	if _, err := PopulateLevel(w, lvl, "odd.json"); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if got := CountLevelOwned(w); got != 2 {
		t.Fatalf("expected root and crate, got %d", got)
	}
	if got := len(w.Query(component.ActivatorComponent.Kind())); got != 1 {
		t.Fatalf("expected one activator, got %d", got)
	}
}

func TestPopulateNilLevel(t *testing.T) {
	if _, err := PopulateLevel(ecs.NewWorld(), nil, "none"); err == nil {
		t.Fatalf("expected error for nil level")
	}
}

func TestGateSpawn(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewGateAt(w, 4, 10, common.ColorYellow)
	if err != nil {
		t.Fatalf("spawn gate: %v", err)
	}

	code, ok := ecs.Get(w, e, component.ColorCodeComponent.Kind())
	if !ok || *code != common.ColorYellow {
		t.Fatalf("expected yellow gate, got %v ok=%v", code, ok)
	}
	gate, _ := ecs.Get(w, e, component.GateStateComponent.Kind())
	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if gate.IsOpen {
		t.Fatalf("expected gate to spawn closed")
	}
	if gate.ClosedY != transform.Y || transform.Y != 10.5*common.TileSize {
		t.Fatalf("expected rest at tile center, got closed=%v y=%v", gate.ClosedY, transform.Y)
	}
	motion, _ := ecs.Get(w, e, component.GateMotionComponent.Kind())
	if motion.TravelDistance != common.TileSize || motion.Rate != 2*common.TileSize {
		t.Fatalf("unexpected motion %+v", motion)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Kind != component.BodyKinematic || body.Width != common.TileSize || body.Height != common.TileSize {
		t.Fatalf("expected one-tile kinematic collider, got %+v", body)
	}
}

func TestDoorSpawn(t *testing.T) {
	w := ecs.NewWorld()

	open, err := NewDoorAt(w, 1, 1, "level2.json", false, common.ColorBlue)
	if err != nil {
		t.Fatalf("spawn door: %v", err)
	}
	if ecs.Has(w, open, component.GateStateComponent.Kind()) || ecs.Has(w, open, component.ColorCodeComponent.Kind()) {
		t.Fatalf("expected unlocked door to have no channel")
	}

	locked, err := NewDoorAt(w, 2, 1, "", true, common.ColorBlue)
	if err != nil {
		t.Fatalf("spawn locked door: %v", err)
	}
	code, ok := ecs.Get(w, locked, component.ColorCodeComponent.Kind())
	if !ok || *code != common.ColorBlue {
		t.Fatalf("expected blue locked door")
	}
	if ecs.Has(w, locked, component.GateMotionComponent.Kind()) {
		t.Fatalf("expected locked door not to move")
	}
}

func TestWallSpawnSpansTiles(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewWallAt(w, 0, 22, 40, 2)
	if err != nil {
		t.Fatalf("spawn wall: %v", err)
	}
	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if transform.X != 20*common.TileSize || transform.Y != 23*common.TileSize {
		t.Fatalf("unexpected wall center (%v, %v)", transform.X, transform.Y)
	}
	if body.Width != 40*common.TileSize || body.Height != 2*common.TileSize || body.Kind != component.BodyStatic {
		t.Fatalf("unexpected wall body %+v", body)
	}
}

func TestPopulateTagFailureRemovesPartialLevel(t *testing.T) {
	spawners["ghost"] = func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		e := w.CreateEntity()
		w.DestroyEntity(e)
		return e, nil
	}
	defer delete(spawners, "ghost")

	w := ecs.NewWorld()
	lvl := &levels.Level{
		Name:   "broken",
		Width:  10,
		Height: 10,
		Entities: []levels.Entity{
			{Type: "crate", Position: levels.Position{X: 1, Y: 1}},
			{Type: "ghost", Position: levels.Position{X: 2, Y: 1}},
		},
	}

	if _, err := PopulateLevel(w, lvl, "broken.json"); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if n := w.Len(); n != 0 {
		t.Fatalf("expected no entities left behind, got %d", n)
	}
}
