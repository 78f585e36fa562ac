package system

import (
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// PursuerLink remembers which agent was redirected and what it chased before.
type PursuerLink struct {
	Agent    ecs.Entity
	Original uint64
	Decoy    ecs.Entity
}

// PursuerRedirector points a pursuer at a decoy for the duration of a
// possession. It holds at most one link.
type PursuerRedirector struct {
	link   PursuerLink
	linked bool
}

func NewPursuerRedirector() *PursuerRedirector {
	return &PursuerRedirector{}
}

// Chasing reports whether agent is a pursuer whose current target lies in
// rig's hierarchy.
func (r *PursuerRedirector) Chasing(w *ecs.World, agent, rig ecs.Entity) bool {
	p, ok := ecs.Get(w, agent, component.PursuerComponent.Kind())
	if !ok {
		return false
	}
	target := ecs.Entity(p.GetTarget())
	if !target.Valid() || !ecs.IsAlive(w, target) {
		return false
	}
	return ecs.IsDescendant(w, target, rig)
}

// Redirect retargets agent at decoy if it is chasing rig. It returns the
// previous target and whether a redirect happened.
func (r *PursuerRedirector) Redirect(w *ecs.World, agent, decoy, rig ecs.Entity) (uint64, bool) {
	if r.linked || !decoy.Valid() || !r.Chasing(w, agent, rig) {
		return 0, false
	}
	p, _ := ecs.Get(w, agent, component.PursuerComponent.Kind())
	prev := p.GetTarget()
	p.SetTarget(uint64(decoy))
	r.link = PursuerLink{Agent: agent, Original: prev, Decoy: decoy}
	r.linked = true
	return prev, true
}

// Restore points the linked agent back at its original target. A destroyed
// agent is forgotten quietly.
func (r *PursuerRedirector) Restore(w *ecs.World) bool {
	if !r.linked {
		return false
	}
	link := r.link
	r.link = PursuerLink{}
	r.linked = false
	p, ok := ecs.Get(w, link.Agent, component.PursuerComponent.Kind())
	if !ok {
		return false
	}
	p.SetTarget(link.Original)
	return true
}

func (r *PursuerRedirector) Link() (PursuerLink, bool) {
	return r.link, r.linked
}

// Stale reports a link whose agent or decoy no longer exists.
func (r *PursuerRedirector) Stale(w *ecs.World) bool {
	if !r.linked {
		return false
	}
	return !ecs.IsAlive(w, r.link.Agent) || !ecs.IsAlive(w, r.link.Decoy)
}
