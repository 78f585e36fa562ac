package ecs

import "github.com/milk9111/viewpoint/ecs/component"

// DefaultDeltaTime is the frame delta used until SetDeltaTime is called.
const DefaultDeltaTime = 1.0 / 60.0

// World owns entities, components, and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler Scheduler
	events    EventQueue

	delta float64
	frame uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		delta:  DefaultDeltaTime,
	}
}

// AddSystem appends a system to StageSimulate.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// AddSystemAt appends a system to the given stage.
func (w *World) AddSystemAt(stage Stage, s System) {
	if w == nil {
		return
	}
	w.scheduler.AddAt(stage, s)
}

// Systems returns the systems in update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update discards the previous frame's events and runs all systems once.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.events.flush()
	w.frame++
	w.scheduler.Update(w)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetDeltaTime sets the elapsed seconds the next Update represents.
// Non-positive values are ignored.
func (w *World) SetDeltaTime(seconds float64) {
	if w == nil || seconds <= 0 {
		return
	}
	w.delta = seconds
}

// DeltaTime returns the elapsed seconds of the current frame.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Frame returns how many times Update has run.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
