package system

import (
	"log"
	"path"

	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/entity"
	"github.com/milk9111/chromagate/levels"
)

// LevelSource delivers finished level loads without blocking.
type LevelSource interface {
	Poll() (levels.LoadResult, bool)
}

// LevelPopulateSystem spawns levels as their loads complete.
type LevelPopulateSystem struct {
	source LevelSource

	// OnPopulated, when set, is called with each new level root.
	OnPopulated func(root ecs.Entity, lvl *levels.Level)
}

func NewLevelPopulateSystem(source LevelSource) *LevelPopulateSystem {
	return &LevelPopulateSystem{source: source}
}

func (s *LevelPopulateSystem) Update(w *ecs.World) {
	if s == nil || s.source == nil || w == nil {
		return
	}

	for {
		res, ok := s.source.Poll()
		if !ok {
			return
		}
		if res.Err != nil {
			log.Printf("level populate: %v", res.Err)
			continue
		}

		name := path.Base(res.Path)
		root, err := entity.PopulateLevel(w, res.Level, name)
		if err != nil {
			log.Printf("level populate: %v", err)
			continue
		}
		log.Printf("level populate: %s (%d records)", name, len(res.Level.Entities))
		if s.OnPopulated != nil {
			s.OnPopulated(root, res.Level)
		}
	}
}
