package system

import (
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// PossessionInputSystem turns input edges into possession requests: press
// to enter the viewpoint, release to leave, and teleport while inside.
type PossessionInputSystem struct {
	viewpoint ecs.Entity
}

func NewPossessionInputSystem(viewpoint ecs.Entity) *PossessionInputSystem {
	return &PossessionInputSystem{viewpoint: viewpoint}
}

func (s *PossessionInputSystem) SetViewpoint(e ecs.Entity) {
	s.viewpoint = e
}

func (s *PossessionInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ent, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return
	}
	in, _ := ecs.Get(w, ent, component.InputComponent.Kind())
	if in.PossessPressed && s.viewpoint.Valid() {
		RequestBeginPossession(w, s.viewpoint)
	}
	if in.TeleportPressed {
		RequestTeleportRebase(w)
	}
	if in.PossessReleased {
		RequestEndPossession(w)
	}
}
