package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/milk9111/viewpoint/prefabs"
)

// LoadScene builds every prefab listed in the scene file, adds the global
// audio listener and binds pursuer targets by name.
func LoadScene(w *ecs.World, filename string) error {
	spec, err := prefabs.LoadSceneSpec(filename)
	if err != nil {
		return err
	}
	return BuildScene(w, spec)
}

func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) error {
	if w == nil || spec == nil {
		return fmt.Errorf("scene: world or spec is nil")
	}

	level := spec.Listener
	if level == 0 {
		level = 1
	}
	if _, err := NewListener(w, level); err != nil {
		return fmt.Errorf("scene %q: %w", spec.Name, err)
	}

	for i, entry := range spec.Entries {
		e, err := BuildEntity(w, entry.Prefab)
		if err != nil {
			return fmt.Errorf("scene %q: entry %d: %w", spec.Name, i, err)
		}
		if entry.Position == nil && entry.Yaw == 0 {
			continue
		}
		pos, _ := ecs.WorldPosition(w, e)
		if entry.Position != nil {
			pos = mgl64.Vec3{entry.Position.X, entry.Position.Y, entry.Position.Z}
		}
		rot := mgl64.QuatRotate(entry.Yaw*math.Pi/180, mgl64.Vec3{0, 1, 0})
		if err := SetEntityPose(w, e, pos, rot); err != nil {
			return fmt.Errorf("scene %q: entry %d: %w", spec.Name, i, err)
		}
	}

	if err := ResolvePursuerTargets(w); err != nil {
		return fmt.Errorf("scene %q: %w", spec.Name, err)
	}
	return nil
}

// NewListener adds the audio listener, reusing one that already exists.
func NewListener(w *ecs.World, level float64) (ecs.Entity, error) {
	if e, ok := ecs.First(w, component.AudioListenerComponent.Kind()); ok {
		l, _ := ecs.Get(w, e, component.AudioListenerComponent.Kind())
		l.Level = level
		return e, nil
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioListenerComponent.Kind(), &component.AudioListener{Level: level}); err != nil {
		return 0, err
	}
	return e, nil
}
