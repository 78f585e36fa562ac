package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

const (
	physicsIterations = 20
	groundHalfWidth   = 1000.0
	defaultBodyRadius = 0.4
)

// PhysicsSystem simulates bodies in the vertical X/Y plane. For dynamic
// bodies horizontal motion is authored on the Transform and the simulation
// owns height; kinematic bodies follow their Transform exactly.
type PhysicsSystem struct {
	space  *cp.Space
	ground *cp.Shape
	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = physicsIterations
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	ground := cp.NewSegment(space.StaticBody, cp.Vector{X: -groundHalfWidth, Y: 0}, cp.Vector{X: groundHalfWidth, Y: 0}, 0)
	ground.SetFriction(1)
	space.AddShape(ground)

	return &PhysicsSystem{
		space:  space,
		ground: ground,
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.space.Step(w.DeltaTime())
	ps.syncTransforms(w)
}

// syncEntities creates missing bodies and pushes authored state into the
// simulation before it steps.
func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, _ *component.Transform) {
		pos, ok := ecs.WorldPosition(w, e)
		if !ok {
			return
		}
		if _, tracked := ps.bodies[e]; !tracked || pb.Body == nil {
			ps.createBody(e, pb, pos)
		}
		syncBodyModes(pb)

		body := pb.Body
		if pb.Kinematic {
			body.SetPosition(bodyCenter(pos, pb.Radius))
			body.SetVelocity(0, 0)
			return
		}
		cur := body.Position()
		body.SetPosition(cp.Vector{X: pos.X(), Y: cur.Y})
	})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, pb *component.PhysicsBody, pos mgl64.Vec3) {
	if old := ps.bodies[e]; old != nil {
		ps.removeBody(old)
	}
	if pb.Radius <= 0 {
		pb.Radius = defaultBodyRadius
	}
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{}))
	body.SetPosition(bodyCenter(pos, pb.Radius))
	shape := cp.NewCircle(body, pb.Radius, cp.Vector{})
	shape.SetFriction(pb.Friction)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	// Shape mass keeps the body's mass valid across kinematic/dynamic swaps.
	shape.SetMass(mass)

	pb.Body = body
	pb.Shape = shape
	ps.bodies[e] = &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, _ *component.Transform) {
		if pb.Body == nil || pb.Kinematic {
			return
		}
		pos, ok := ecs.WorldPosition(w, e)
		if !ok {
			return
		}
		center := pb.Body.Position()
		ecs.SetWorldPosition(w, e, mgl64.Vec3{center.X, center.Y - pb.Radius, pos.Z()})
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body == info.body {
			continue
		}
		ps.removeBody(info)
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

// bodyCenter converts a feet position to the circle's center.
func bodyCenter(pos mgl64.Vec3, radius float64) cp.Vector {
	return cp.Vector{X: pos.X(), Y: pos.Y() + radius}
}
