package entity

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
	"github.com/milk9111/chromagate/levels"
)

type spawnFunc func(w *ecs.World, rec levels.Entity) (ecs.Entity, error)

var spawners = map[string]spawnFunc{
	"wall": func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		return NewWallAt(w, rec.Position.X, rec.Position.Y, rec.Width, rec.Height)
	},
	"player": func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		return NewPlayerAt(w, rec.Position.X, rec.Position.Y)
	},
	"crate": func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		return NewCrateAt(w, rec.Position.X, rec.Position.Y)
	},
	"crystal": func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		return NewCrystalAt(w, rec.Position.X, rec.Position.Y, rec.ColorCode)
	},
	"gate": func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		return NewGateAt(w, rec.Position.X, rec.Position.Y, rec.ColorCode)
	},
	"door": func(w *ecs.World, rec levels.Entity) (ecs.Entity, error) {
		return NewDoorAt(w, rec.Position.X, rec.Position.Y, levels.NormalizeName(rec.TargetLevel), rec.Locked, rec.ColorCode)
	},
}

// PopulateLevel spawns every record of lvl under a new level root. The root
// and all spawned entities are tagged LevelOwned with name.
func PopulateLevel(w *ecs.World, lvl *levels.Level, name string) (ecs.Entity, error) {
	if lvl == nil {
		return 0, fmt.Errorf("entity: populate %s: nil level", name)
	}

	root := w.CreateEntity()
	if err := ecs.Add(w, root, component.LevelRootComponent.Kind(), &component.LevelRoot{Name: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, root, component.LevelOwnedComponent.Kind(), &component.LevelOwned{Level: name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, root, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * common.TileSize,
		Height: float64(lvl.Height) * common.TileSize,
	}); err != nil {
		return 0, err
	}

	for i, rec := range lvl.Entities {
		spawn, ok := spawners[strings.ToLower(rec.Type)]
		if !ok {
			log.Printf("entity: level %s: record %d: unknown type %q", name, i, rec.Type)
			continue
		}
		e, err := spawn(w, rec)
		if err != nil {
			w.DespawnRecursive(root)
			return 0, fmt.Errorf("entity: level %s: spawn %s: %w", name, rec.Type, err)
		}
		if err := ecs.Add(w, e, component.LevelOwnedComponent.Kind(), &component.LevelOwned{Level: name}); err != nil {
			w.DespawnRecursive(e)
			w.DespawnRecursive(root)
			return 0, fmt.Errorf("entity: level %s: tag %s: %w", name, rec.Type, err)
		}
		if err := w.SetParent(e, root); err != nil {
			w.DespawnRecursive(e)
			w.DespawnRecursive(root)
			return 0, fmt.Errorf("entity: level %s: parent %s: %w", name, rec.Type, err)
		}
	}

	return root, nil
}

// DespawnLevel destroys every level-owned entity and its descendants. It
// returns the number destroyed.
func DespawnLevel(w *ecs.World) int {
	n := 0
	for _, e := range w.Query(component.LevelOwnedComponent.Kind()) {
		n += w.DespawnRecursive(e)
	}
	return n
}

// CountLevelOwned returns the number of live level-owned entities.
func CountLevelOwned(w *ecs.World) int {
	return len(w.Query(component.LevelOwnedComponent.Kind()))
}
