package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for an entity. The simulation
// runs in the world's vertical X/Y plane; Z is carried by the Transform.
//
// Kinematic and Collides are the authored modes; the physics system pushes
// them onto Body and Shape every step.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Radius    float64
	Mass      float64
	Friction  float64
	Kinematic bool
	Collides  bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
