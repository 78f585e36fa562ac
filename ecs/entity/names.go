package entity

import (
	"fmt"

	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// FindByName returns the first live entity carrying name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if w == nil || name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if found == 0 && n.Value == name {
			found = e
		}
	})
	return found, found != 0
}

// FindAll resolves every name or reports the first one missing.
func FindAll(w *ecs.World, names []string) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(names))
	for _, name := range names {
		e, ok := FindByName(w, name)
		if !ok {
			return nil, fmt.Errorf("entity %q not found", name)
		}
		out = append(out, e)
	}
	return out, nil
}

// ResolvePursuerTargets binds every pursuer's TargetName to a live entity.
// Pursuers that already have a target are left alone.
func ResolvePursuerTargets(w *ecs.World) error {
	var err error
	ecs.ForEach(w, component.PursuerComponent.Kind(), func(e ecs.Entity, p *component.Pursuer) {
		if err != nil || p.Target != 0 || p.TargetName == "" {
			return
		}
		target, ok := FindByName(w, p.TargetName)
		if !ok {
			err = fmt.Errorf("pursuer %v: target %q not found", e, p.TargetName)
			return
		}
		p.SetTarget(uint64(target))
	})
	return err
}
