package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/milk9111/viewpoint/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"viewpoint_tag":  addViewpointTag,
	"stand_in_tag":   addStandInTag,
	"transform":      addTransform,
	"camera":         addCamera,
	"control_script": addControlScript,
	"locomotion":     addLocomotion,
	"input":          addInput,
	"visual":         addVisual,
	"physics_body":   addPhysicsBody,
	"pursuer":        addPursuer,
	"audio":          addAudio,
	"audio_listener": addAudioListener,
}

// Transform goes first so later builders can read it.
var componentBuildOrder = []string{
	"transform",
	"player_tag",
	"viewpoint_tag",
	"stand_in_tag",
	"camera",
	"control_script",
	"locomotion",
	"input",
	"visual",
	"physics_body",
	"pursuer",
	"audio",
	"audio_listener",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

// BuildEntityFromSpec builds spec and its children. On error nothing built
// so far is left in the world.
func BuildEntityFromSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 && len(spec.Children) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	var built []ecs.Entity
	e, err := buildTree(w, spec, &buildContext{PrefabPath: prefabPath}, &built)
	if err != nil {
		for i := len(built) - 1; i >= 0; i-- {
			ecs.DestroyEntity(w, built[i])
		}
		return 0, err
	}
	return e, nil
}

func buildTree(w *ecs.World, spec entityPrefabSpec, ctx *buildContext, built *[]ecs.Entity) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	*built = append(*built, e)

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			return 0, err
		}
	}
	if err := addComponents(w, e, spec.Components, ctx); err != nil {
		return 0, fmt.Errorf("build entity: %q: %w", ctx.PrefabPath, err)
	}

	for i, child := range spec.Children {
		c, err := buildTree(w, child, ctx, built)
		if err != nil {
			return 0, err
		}
		if !ecs.Has(w, c, component.TransformComponent.Kind()) {
			_ = ecs.Add(w, c, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{}))
		}
		if !ecs.Has(w, e, component.TransformComponent.Kind()) {
			_ = ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{}))
		}
		if err := ecs.SetParent(w, c, e, false); err != nil {
			return 0, fmt.Errorf("build entity: %q: child %d: %w", ctx.PrefabPath, i, err)
		}
	}
	return e, nil
}

func addComponents(w *ecs.World, e ecs.Entity, components map[string]any, ctx *buildContext) error {
	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	apply := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("no builder for component %q", name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := apply(name); err != nil {
			return err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := apply(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetEntityPose places e in world space.
func SetEntityPose(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, rot mgl64.Quat) error {
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{})); err != nil {
			return err
		}
	}
	ecs.SetWorldPose(w, e, pos, rot)
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addViewpointTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ViewpointTagComponent.Kind(), &component.ViewpointTag{})
}

func addStandInTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.StandInTagComponent.Kind(), &component.StandInTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: yawPitch(spec.Yaw, spec.Pitch),
	})
}

// yawPitch builds a rotation from angles in degrees. Positive pitch looks up.
func yawPitch(yawDeg, pitchDeg float64) mgl64.Quat {
	yaw := mgl64.QuatRotate(yawDeg*math.Pi/180, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(-pitchDeg*math.Pi/180, mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch).Normalize()
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	mask := component.LayerAll
	if len(spec.CullingMask) > 0 {
		if mask, err = component.LayerMask(spec.CullingMask...); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{CullingMask: mask, Main: spec.Main})
}

type controlScriptSpec = prefabs.ControlScriptComponentSpec

func addControlScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[controlScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode control script spec: %w", err)
	}
	return ecs.Add(w, e, component.ControlScriptComponent.Kind(), &component.ControlScript{Name: spec.Name, Enabled: !spec.Disabled})
}

type locomotionSpec = prefabs.LocomotionComponentSpec

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}
	loco := &component.Locomotion{MoveSpeed: spec.MoveSpeed, TurnSpeed: spec.TurnSpeed}
	if spec.Rig != "" {
		rig, ok := FindByName(w, spec.Rig)
		if !ok {
			return fmt.Errorf("locomotion rig %q not found", spec.Rig)
		}
		loco.Rig = uint64(rig)
	}
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), loco)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type visualSpec = prefabs.VisualComponentSpec

func addVisual(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[visualSpec](raw)
	if err != nil {
		return fmt.Errorf("decode visual spec: %w", err)
	}
	layer := component.LayerDefault
	if spec.Layer != "" {
		if layer, err = component.LayerByName(spec.Layer); err != nil {
			return err
		}
	}
	vis := &component.Visual{Active: !spec.Hidden, Layer: layer, Radius: spec.Radius}
	if spec.Color != "" {
		c, err := prefabs.ParseHexColor(spec.Color)
		if err != nil {
			return err
		}
		vis.Color = c
	}
	return ecs.Add(w, e, component.VisualComponent.Kind(), vis)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:    spec.Radius,
		Mass:      spec.Mass,
		Friction:  spec.Friction,
		Kinematic: spec.Kinematic,
		Collides:  !spec.Ghost,
	})
}

type pursuerSpec = prefabs.PursuerComponentSpec

func addPursuer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pursuerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pursuer spec: %w", err)
	}
	return ecs.Add(w, e, component.PursuerComponent.Kind(), &component.Pursuer{
		TargetName:   spec.Target,
		Speed:        spec.Speed,
		StopDistance: spec.StopDistance,
		Script:       spec.Script,
	})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponent(spec.Clips)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	for _, name := range spec.Autoplay {
		if !comp.Request(name) {
			return fmt.Errorf("autoplay clip %q not defined", name)
		}
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

type audioListenerSpec = prefabs.AudioListenerComponentSpec

func addAudioListener(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioListenerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio listener spec: %w", err)
	}
	level := 1.0
	if spec.Level != nil {
		level = *spec.Level
	}
	return ecs.Add(w, e, component.AudioListenerComponent.Kind(), &component.AudioListener{Level: level})
}
