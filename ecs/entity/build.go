package entity

import (
	"image/color"

	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
	"github.com/milk9111/chromagate/prefabs"
)

// builder accumulates components for one entity and keeps the first error.
type builder struct {
	w   *ecs.World
	e   ecs.Entity
	err error
}

func newBuilder(w *ecs.World) *builder {
	return &builder{w: w, e: w.CreateEntity()}
}

func with[T any](b *builder, kind component.ComponentKind[T], value *T) {
	if b.err != nil {
		return
	}
	b.err = ecs.Add(b.w, b.e, kind, value)
}

// done returns the entity, destroying it if any component failed to attach.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		b.w.DestroyEntity(b.e)
		return 0, b.err
	}
	return b.e, nil
}

func transformAt(x, y float64) *component.Transform {
	return &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

func sizeOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// NewGateAt spawns a kinematic one-tile gate on channel code at tile (tx, ty).
func NewGateAt(w *ecs.World, tx, ty float64, code common.ColorCode) (ecs.Entity, error) {
	spec, err := prefabs.LoadGateSpec()
	if err != nil {
		return 0, err
	}
	x, y := common.TileCenter(tx, ty)
	width := sizeOr(spec.Collider.Width, common.TileSize)
	height := sizeOr(spec.Collider.Height, common.TileSize)

	b := newBuilder(w)
	with(b, component.TransformComponent.Kind(), transformAt(x, y))
	with(b, component.ColorCodeComponent.Kind(), &code)
	with(b, component.GateStateComponent.Kind(), &component.GateState{ClosedY: y})
	with(b, component.GateMotionComponent.Kind(), &component.GateMotion{
		TravelDistance: sizeOr(spec.TravelTiles, 1) * common.TileSize,
		Rate:           sizeOr(spec.SpeedTilesPerSecond, 2) * common.TileSize,
	})
	with(b, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:     component.BodyKinematic,
		Width:    width,
		Height:   height,
		Friction: spec.Collider.Friction,
	})
	with(b, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  width,
		Height: height,
		Color:  spec.Sprite.RGBA(code.RGBA()),
		Layer:  spec.Sprite.Layer,
	})
	return b.done()
}

// NewCrystalAt spawns an activation source on channel code at tile (tx, ty).
func NewCrystalAt(w *ecs.World, tx, ty float64, code common.ColorCode) (ecs.Entity, error) {
	spec, err := prefabs.LoadCrystalSpec()
	if err != nil {
		return 0, err
	}
	x, y := common.TileCenter(tx, ty)
	width := sizeOr(spec.Collider.Width, common.TileSize)
	height := sizeOr(spec.Collider.Height, common.TileSize)

	b := newBuilder(w)
	with(b, component.TransformComponent.Kind(), transformAt(x, y))
	with(b, component.ColorCodeComponent.Kind(), &code)
	with(b, component.CrystalStateComponent.Kind(), &component.CrystalState{})
	with(b, component.CrystalComponent.Kind(), &component.Crystal{SensorMargin: spec.SensorMargin})
	with(b, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:     component.BodyStatic,
		Width:    width,
		Height:   height,
		Friction: spec.Collider.Friction,
	})
	with(b, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  width,
		Height: height,
		Color:  spec.Sprite.RGBA(code.RGBA()),
		Layer:  spec.Sprite.Layer,
	})
	return b.done()
}

// NewDoorAt spawns a level exit. A locked door joins channel code and starts
// closed; an unlocked door is always open and ignores code.
func NewDoorAt(w *ecs.World, tx, ty float64, target string, locked bool, code common.ColorCode) (ecs.Entity, error) {
	spec, err := prefabs.LoadDoorSpec()
	if err != nil {
		return 0, err
	}
	x, y := common.TileCenter(tx, ty)
	width := sizeOr(spec.Collider.Width, common.TileSize)
	height := sizeOr(spec.Collider.Height, common.TileSize)

	fill := spec.Sprite.RGBA(color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff})
	b := newBuilder(w)
	with(b, component.TransformComponent.Kind(), transformAt(x, y))
	with(b, component.DoorComponent.Kind(), &component.Door{TargetLevel: target})
	if locked {
		fill = code.RGBA()
		with(b, component.ColorCodeComponent.Kind(), &code)
		with(b, component.GateStateComponent.Kind(), &component.GateState{ClosedY: y})
	}
	with(b, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  width,
		Height: height,
		Color:  fill,
		Layer:  spec.Sprite.Layer,
	})
	return b.done()
}

func NewPlayerAt(w *ecs.World, tx, ty float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, err
	}
	x, y := common.TileCenter(tx, ty)
	width := sizeOr(spec.Collider.Width, common.TileSize)
	height := sizeOr(spec.Collider.Height, common.TileSize)

	b := newBuilder(w)
	with(b, component.TransformComponent.Kind(), transformAt(x, y))
	with(b, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	with(b, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed, JumpSpeed: spec.JumpSpeed})
	with(b, component.InputComponent.Kind(), &component.Input{})
	with(b, component.ActivatorComponent.Kind(), &component.Activator{})
	with(b, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyDynamic,
		Width:      width,
		Height:     height,
		Mass:       spec.Collider.Mass,
		Friction:   spec.Collider.Friction,
		Elasticity: spec.Collider.Elasticity,
	})
	with(b, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  width,
		Height: height,
		Color:  spec.Sprite.RGBA(color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}),
		Layer:  spec.Sprite.Layer,
	})
	return b.done()
}

// NewCrateAt spawns a pushable block that weighs down crystals.
func NewCrateAt(w *ecs.World, tx, ty float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadCrateSpec()
	if err != nil {
		return 0, err
	}
	x, y := common.TileCenter(tx, ty)
	width := sizeOr(spec.Collider.Width, common.TileSize)
	height := sizeOr(spec.Collider.Height, common.TileSize)

	b := newBuilder(w)
	with(b, component.TransformComponent.Kind(), transformAt(x, y))
	with(b, component.ActivatorComponent.Kind(), &component.Activator{})
	with(b, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyDynamic,
		Width:      width,
		Height:     height,
		Mass:       spec.Collider.Mass,
		Friction:   spec.Collider.Friction,
		Elasticity: spec.Collider.Elasticity,
	})
	with(b, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  width,
		Height: height,
		Color:  spec.Sprite.RGBA(color.RGBA{R: 0xa0, G: 0x52, B: 0x2d, A: 0xff}),
		Layer:  spec.Sprite.Layer,
	})
	return b.done()
}

// NewWallAt spawns a static block whose top-left tile is (tx, ty) and which
// spans tw by th tiles.
func NewWallAt(w *ecs.World, tx, ty float64, tw, th int) (ecs.Entity, error) {
	spec, err := prefabs.LoadWallSpec()
	if err != nil {
		return 0, err
	}
	if tw <= 0 {
		tw = 1
	}
	if th <= 0 {
		th = 1
	}
	width := float64(tw) * common.TileSize
	height := float64(th) * common.TileSize
	x := tx*common.TileSize + width/2
	y := ty*common.TileSize + height/2

	b := newBuilder(w)
	with(b, component.TransformComponent.Kind(), transformAt(x, y))
	with(b, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       component.BodyStatic,
		Width:      width,
		Height:     height,
		Friction:   spec.Collider.Friction,
		Elasticity: spec.Collider.Elasticity,
	})
	with(b, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  width,
		Height: height,
		Color:  spec.Sprite.RGBA(color.RGBA{R: 0x3c, G: 0x3f, B: 0x4a, A: 0xff}),
		Layer:  spec.Sprite.Layer,
	})
	return b.done()
}
