package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
)

func NewRig(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "rig.yaml")
}

func NewRigAt(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	e, err := BuildEntity(w, "rig.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityPose(w, e, pos, rot); err != nil {
		return 0, fmt.Errorf("rig: override transform: %w", err)
	}
	return e, nil
}
