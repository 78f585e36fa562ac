package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// PhysicsDecoupler takes the rig's body out of the simulation while it is
// being driven remotely, and hands it back where the rig ends up.
type PhysicsDecoupler struct {
	entity    ecs.Entity
	kinematic bool
	collides  bool
	suspended bool
}

func NewPhysicsDecoupler() *PhysicsDecoupler {
	return &PhysicsDecoupler{}
}

// Suspend records the body's modes, then makes it kinematic and
// non-colliding. Entities without a body are left alone.
func (d *PhysicsDecoupler) Suspend(w *ecs.World, e ecs.Entity) {
	if d.suspended {
		return
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	d.entity = e
	d.kinematic = pb.Kinematic
	d.collides = pb.Collides
	d.suspended = true

	pb.Kinematic = true
	pb.Collides = false
	if pb.Body != nil {
		pb.Body.SetVelocity(0, 0)
		pb.Body.SetAngularVelocity(0)
	}
	syncBodyModes(pb)
}

// Resume restores the recorded modes and moves the body to the entity's
// current world position so it does not snap back to where it was
// suspended.
func (d *PhysicsDecoupler) Resume(w *ecs.World) {
	if !d.suspended {
		return
	}
	d.suspended = false
	pb, ok := ecs.Get(w, d.entity, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	pb.Kinematic = d.kinematic
	pb.Collides = d.collides
	syncBodyModes(pb)
	if pb.Body != nil {
		if pos, ok := ecs.WorldPosition(w, d.entity); ok {
			pb.Body.SetPosition(bodyCenter(pos, pb.Radius))
		}
		pb.Body.SetVelocity(0, 0)
		pb.Body.SetAngularVelocity(0)
	}
}

func (d *PhysicsDecoupler) Suspended() bool {
	return d.suspended
}

// syncBodyModes pushes the component's Kinematic and Collides flags onto the
// Chipmunk body and shape.
func syncBodyModes(pb *component.PhysicsBody) {
	if pb == nil {
		return
	}
	if pb.Body != nil {
		want := cp.BODY_DYNAMIC
		if pb.Kinematic {
			want = cp.BODY_KINEMATIC
		}
		if pb.Body.GetType() != want {
			pb.Body.SetType(want)
		}
	}
	if pb.Shape != nil {
		pb.Shape.SetSensor(!pb.Collides)
	}
}
