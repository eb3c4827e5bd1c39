package system

import (
	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
)

// aabb is an axis-aligned box in world pixels.
type aabb struct {
	minX, minY, maxX, maxY float64
}

func (b aabb) overlaps(o aabb) bool {
	return b.minX < o.maxX && o.minX < b.maxX && b.minY < o.maxY && o.minY < b.maxY
}

func (b aabb) grow(margin float64) aabb {
	return aabb{minX: b.minX - margin, minY: b.minY - margin, maxX: b.maxX + margin, maxY: b.maxY + margin}
}

func boxAt(x, y, width, height float64) aabb {
	return aabb{minX: x - width/2, minY: y - height/2, maxX: x + width/2, maxY: y + height/2}
}

// boundsOf sizes an entity by its collider, then its sprite, then one tile.
func boundsOf(w *ecs.World, e ecs.Entity) (aabb, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return aabb{}, false
	}

	width, height := common.TileSize, common.TileSize
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Width > 0 && body.Height > 0 {
		width, height = body.Width, body.Height
	} else if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && sprite.Width > 0 && sprite.Height > 0 {
		width, height = sprite.Width, sprite.Height
	}
	return boxAt(t.X, t.Y, width, height), true
}
