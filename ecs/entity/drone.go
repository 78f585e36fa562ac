package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

func NewDrone(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "drone.yaml")
}

func NewDroneAt(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	e, err := BuildEntity(w, "drone.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityPose(w, e, pos, rot); err != nil {
		return 0, fmt.Errorf("drone: override transform: %w", err)
	}
	return e, nil
}

// DroneViewpoint returns the possessable child of drone.
func DroneViewpoint(w *ecs.World, drone ecs.Entity) (ecs.Entity, bool) {
	var vp ecs.Entity
	ecs.ForEach(w, component.ViewpointTagComponent.Kind(), func(e ecs.Entity, _ *component.ViewpointTag) {
		if vp == 0 && ecs.IsDescendant(w, e, drone) {
			vp = e
		}
	})
	return vp, vp != 0
}
