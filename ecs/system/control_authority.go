package system

import (
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

type toggleRecord struct {
	entity  ecs.Entity
	enabled bool
}

// toggleGroup switches a boolean flag off across a fixed member list and puts
// every member back to the value it had before.
type toggleGroup[T any] struct {
	kind   component.ComponentKind[T]
	get    func(*T) bool
	set    func(*T, bool)
	saved  []toggleRecord
	active bool
}

func (g *toggleGroup[T]) suspend(w *ecs.World, members []ecs.Entity) {
	if g.active {
		return
	}
	g.saved = g.saved[:0]
	for _, e := range members {
		v, ok := ecs.Get(w, e, g.kind)
		if !ok {
			continue
		}
		g.saved = append(g.saved, toggleRecord{entity: e, enabled: g.get(v)})
		g.set(v, false)
	}
	g.active = true
}

func (g *toggleGroup[T]) resume(w *ecs.World) {
	if !g.active {
		return
	}
	// Reverse order so a member listed twice ends at its original value.
	for i := len(g.saved) - 1; i >= 0; i-- {
		rec := g.saved[i]
		if v, ok := ecs.Get(w, rec.entity, g.kind); ok {
			g.set(v, rec.enabled)
		}
	}
	g.saved = g.saved[:0]
	g.active = false
}

// ControlAuthority disables the player's control scripts as one group.
type ControlAuthority struct {
	group toggleGroup[component.ControlScript]
}

func NewControlAuthority() *ControlAuthority {
	return &ControlAuthority{group: toggleGroup[component.ControlScript]{
		kind: component.ControlScriptComponent.Kind(),
		get:  func(c *component.ControlScript) bool { return c.Enabled },
		set:  func(c *component.ControlScript, on bool) { c.SetEnabled(on) },
	}}
}

func (c *ControlAuthority) Suspend(w *ecs.World, scripts []ecs.Entity) {
	c.group.suspend(w, scripts)
}

func (c *ControlAuthority) Resume(w *ecs.World) {
	c.group.resume(w)
}

func (c *ControlAuthority) Suspended() bool {
	return c.group.active
}

// VisibilityGroup hides a set of visuals, such as hand models, as one group.
type VisibilityGroup struct {
	group toggleGroup[component.Visual]
}

func NewVisibilityGroup() *VisibilityGroup {
	return &VisibilityGroup{group: toggleGroup[component.Visual]{
		kind: component.VisualComponent.Kind(),
		get:  func(v *component.Visual) bool { return v.Active },
		set:  func(v *component.Visual, on bool) { v.Active = on },
	}}
}

func (v *VisibilityGroup) Hide(w *ecs.World, objects []ecs.Entity) {
	v.group.suspend(w, objects)
}

func (v *VisibilityGroup) Restore(w *ecs.World) {
	v.group.resume(w)
}

func (v *VisibilityGroup) Hidden() bool {
	return v.group.active
}
