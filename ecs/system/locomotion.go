package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// LocomotionSystem walks and turns the rig from player input. It does
// nothing while the entity's control script is disabled.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach3(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.ControlScriptComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, in *component.Input, script *component.ControlScript) {
		if !script.Enabled {
			return
		}
		rig := ecs.Entity(loco.Rig)
		if !rig.Valid() {
			rig = e
		}
		pos, rot, ok := ecs.WorldTransform(w, rig)
		if !ok {
			return
		}
		if in.Turn != 0 {
			rot = mgl64.QuatRotate(in.Turn*loco.TurnSpeed*dt, mgl64.Vec3{0, 1, 0}).Mul(rot).Normalize()
		}
		move := mgl64.Vec3{in.MoveX, 0, in.MoveZ}
		if l := move.Len(); l > 1 {
			move = move.Mul(1 / l)
		}
		if move.Len() > 0 {
			move = rot.Rotate(move)
			move[1] = 0
			pos = pos.Add(move.Mul(loco.MoveSpeed * dt))
		}
		ecs.SetWorldPose(w, rig, pos, rot)
	})
}
