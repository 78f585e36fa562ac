package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
)

// StandInSpawner returns a spawner that builds prefab at the requested pose.
// Its signature matches system.StandInSpawner.
func StandInSpawner(prefab string) func(*ecs.World, mgl64.Vec3, mgl64.Quat) (ecs.Entity, error) {
	return func(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
		return NewStandInFrom(w, prefab, pos, rot)
	}
}

func NewStandInAt(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	return NewStandInFrom(w, "stand_in.yaml", pos, rot)
}

func NewStandInFrom(w *ecs.World, prefab string, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPose(w, e, pos, rot); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("stand-in: override transform: %w", err)
	}
	return e, nil
}
