package component

import "github.com/jakecoffman/cp"

type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyDynamic
	// BodyKinematic bodies are positioned from their Transform each step and
	// are not moved by forces.
	BodyKinematic
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width and Height describe a box centered on the Transform.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Kind       BodyKind
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Sensor     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
