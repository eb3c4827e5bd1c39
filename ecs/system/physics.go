package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/chromagate/ecs"
	"github.com/milk9111/chromagate/ecs/component"
	"github.com/milk9111/chromagate/prefabs"
)

const (
	defaultGravity    = 980.0
	defaultIterations = 20
	defaultStep       = 1.0 / 60.0
)

// PhysicsSystem mirrors PhysicsBody entities into a Chipmunk2D space. Bodies
// are registered and removed every tick; the space is only stepped while the
// system is active.
type PhysicsSystem struct {
	space  *cp.Space
	active bool

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	kind   component.BodyKind
	bounds bool
}

// NewPhysicsSystem builds a space from the world prefab, falling back to
// default gravity and iterations when it cannot be read.
func NewPhysicsSystem() *PhysicsSystem {
	gravity, iterations := defaultGravity, defaultIterations
	if spec, err := prefabs.LoadWorldSpec(); err == nil {
		if spec.Gravity != 0 {
			gravity = spec.Gravity
		}
		if spec.Iterations > 0 {
			iterations = spec.Iterations
		}
	}
	return NewPhysicsSystemWith(gravity, iterations)
}

func NewPhysicsSystemWith(gravity float64, iterations int) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = uint(iterations)
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

// SetActive enables or disables stepping.
func (ps *PhysicsSystem) SetActive(active bool) {
	ps.active = active
}

func (ps *PhysicsSystem) Active() bool {
	return ps.active
}

// Bodies returns the number of registered entities.
func (ps *PhysicsSystem) Bodies() int {
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	if !ps.active {
		return
	}

	dt := w.Delta()
	if dt <= 0 {
		dt = defaultStep
	}

	ps.driveKinematic(w, dt)
	ps.space.Step(dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(*transform, *bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
	}

	info := &bodyInfo{kind: bodyComp.Kind}

	var shape *cp.Shape
	switch bodyComp.Kind {
	case component.BodyStatic:
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		info.body = ps.space.StaticBody
	case component.BodyKinematic:
		body := cp.NewKinematicBody()
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		ps.space.AddBody(body)
		shape = cp.NewBox(body, width, height, 0)
		info.body = body
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Infinite moment keeps boxes upright.
		body := cp.NewBody(mass, math.Inf(1))
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		ps.space.AddBody(body)
		shape = cp.NewBox(body, width, height, 0)
		info.body = body
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	ps.space.AddShape(shape)
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{kind: component.BodyStatic, body: ps.space.StaticBody, bounds: true}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

// driveKinematic gives each kinematic body the velocity that carries it to
// its transform over dt, so resting bodies are pushed rather than tunneled.
func (ps *PhysicsSystem) driveKinematic(w *ecs.World, dt float64) {
	for e, info := range ps.entities {
		if info.kind != component.BodyKinematic {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		info.body.SetVelocity((transform.X-pos.X)/dt, (transform.Y-pos.Y)/dt)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.bounds || info.kind == component.BodyStatic {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info.kind == component.BodyKinematic {
			info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
			info.body.SetVelocity(0, 0)
			continue
		}

		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) {
			if info.bounds && ecs.Has(w, e, component.LevelBoundsComponent.Kind()) {
				continue
			}
			if !info.bounds && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
				continue
			}
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && info.body != ps.space.StaticBody {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
