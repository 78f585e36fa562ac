package ecs

import "sort"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Stage groups systems within a frame. Stages run in ascending order and
// systems sharing a stage run in the order they were added.
type Stage int

const (
	// StageInput turns device state into intents and requests.
	StageInput Stage = iota
	// StageSimulate moves things on their own: locomotion, steering.
	StageSimulate
	// StageFollow places things relative to what moved in StageSimulate.
	StageFollow
	// StagePhysics syncs bodies and steps the space.
	StagePhysics
	// StageLate runs after the world has settled: lifetimes, audio.
	StageLate
)

type scheduled struct {
	stage  Stage
	system System
}

// Scheduler orders systems by stage.
type Scheduler struct {
	entries []scheduled
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add schedules system in StageSimulate.
func (s *Scheduler) Add(system System) {
	s.AddAt(StageSimulate, system)
}

// AddAt schedules system after every system already in stage or earlier.
func (s *Scheduler) AddAt(stage Stage, system System) {
	if system == nil {
		return
	}
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].stage > stage
	})
	s.entries = append(s.entries, scheduled{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = scheduled{stage: stage, system: system}
}

func (s *Scheduler) Update(w *World) {
	for _, e := range s.entries {
		e.system.Update(w)
	}
}

// Systems returns the systems in run order.
func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.entries))
	for _, e := range s.entries {
		systems = append(systems, e.system)
	}
	return systems
}
