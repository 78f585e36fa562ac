package component

// Pursuer is an agent chasing a target transform. Target is an ecs.Entity;
// 0 means the pursuer is idle. TargetName is resolved to Target once the
// scene is built.
type Pursuer struct {
	Target       uint64
	TargetName   string
	Speed        float64
	StopDistance float64
	Script       string
}

// GetTarget returns the entity being chased.
func (p *Pursuer) GetTarget() uint64 {
	if p == nil {
		return 0
	}
	return p.Target
}

// SetTarget replaces the entity being chased.
func (p *Pursuer) SetTarget(target uint64) {
	if p == nil {
		return
	}
	p.Target = target
}

var PursuerComponent = NewComponent[Pursuer]()
