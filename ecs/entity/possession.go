package entity

import (
	"fmt"

	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/milk9111/viewpoint/ecs/system"
	"github.com/milk9111/viewpoint/prefabs"
)

// PossessionTuningFromSpec converts the data-driven part of a possession
// spec. Unset fields keep their defaults.
func PossessionTuningFromSpec(spec *prefabs.PossessionSpec) (system.PossessionTuning, error) {
	t := system.DefaultPossessionTuning()
	if spec == nil {
		return t, nil
	}
	if spec.FadeDuration > 0 {
		t.FadeDuration = spec.FadeDuration
	} else if spec.FadeDuration < 0 {
		return t, fmt.Errorf("possession: fade_duration must not be negative, got %v", spec.FadeDuration)
	}
	if len(spec.PossessedCullingMask) > 0 {
		mask, err := component.LayerMask(spec.PossessedCullingMask...)
		if err != nil {
			return t, fmt.Errorf("possession: possessed_culling_mask: %w", err)
		}
		t.PossessedCullingMask = mask
	}
	if spec.TeleportCue != "" {
		t.TeleportCue = spec.TeleportCue
	}
	return t, nil
}

// PossessionConfigFromSpec resolves the named scene entities of spec. It
// also returns the viewpoint the player possesses by default, or 0 when the
// spec names none.
func PossessionConfigFromSpec(w *ecs.World, spec *prefabs.PossessionSpec) (system.PossessionConfig, ecs.Entity, error) {
	var cfg system.PossessionConfig
	if spec == nil {
		return cfg, 0, fmt.Errorf("possession: spec is nil")
	}

	tuning, err := PossessionTuningFromSpec(spec)
	if err != nil {
		return cfg, 0, err
	}
	cfg.PossessionTuning = tuning

	var ok bool
	if cfg.Rig, ok = FindByName(w, spec.Rig); !ok {
		return cfg, 0, fmt.Errorf("possession: rig %q not found", spec.Rig)
	}
	if cfg.Camera, ok = FindByName(w, spec.Camera); !ok {
		return cfg, 0, fmt.Errorf("possession: camera %q not found", spec.Camera)
	}
	if !ecs.IsDescendant(w, cfg.Camera, cfg.Rig) {
		return cfg, 0, fmt.Errorf("possession: camera %q is not part of rig %q", spec.Camera, spec.Rig)
	}
	if cfg.ControlScripts, err = FindAll(w, spec.ControlScripts); err != nil {
		return cfg, 0, fmt.Errorf("possession: control_scripts: %w", err)
	}
	if cfg.HideObjects, err = FindAll(w, spec.HideObjects); err != nil {
		return cfg, 0, fmt.Errorf("possession: hide_objects: %w", err)
	}
	if spec.Pursuer != "" {
		if cfg.Pursuer, ok = FindByName(w, spec.Pursuer); !ok {
			return cfg, 0, fmt.Errorf("possession: pursuer %q not found", spec.Pursuer)
		}
	}
	if spec.StandInPrefab != "" {
		cfg.SpawnStandIn = StandInSpawner(spec.StandInPrefab)
	}

	var viewpoint ecs.Entity
	if spec.Viewpoint != "" {
		if viewpoint, ok = FindByName(w, spec.Viewpoint); !ok {
			return cfg, 0, fmt.Errorf("possession: viewpoint %q not found", spec.Viewpoint)
		}
	}
	return cfg, viewpoint, nil
}
