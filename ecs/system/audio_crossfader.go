package system

import (
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// fadeEpsilon absorbs float drift in accumulated frame deltas so a fade of
// duration D completes on the frame where elapsed reaches D.
const fadeEpsilon = 1e-9

// AudioCrossfader linearly fades the global listener level. One fade runs at
// a time; FadeTo while a fade is in flight restarts from the current level.
type AudioCrossfader struct {
	level    float64
	from     float64
	to       float64
	duration float64
	elapsed  float64
	active   bool
}

func NewAudioCrossfader() *AudioCrossfader {
	return &AudioCrossfader{level: 1}
}

// Level returns the listener level, or the fader's own level when the world
// has no listener.
func (f *AudioCrossfader) Level(w *ecs.World) float64 {
	if l, ok := listener(w); ok {
		return l.Level
	}
	return f.level
}

// Active reports whether a fade is in flight.
func (f *AudioCrossfader) Active() bool {
	return f.active
}

// FadeTo starts a fade from the current level to target over duration
// seconds. A non-positive duration applies target immediately.
func (f *AudioCrossfader) FadeTo(w *ecs.World, target, duration float64) {
	target = common.Clamp01(target)
	if duration <= 0 {
		f.active = false
		f.Set(w, target)
		return
	}
	f.from = f.Level(w)
	f.to = target
	f.duration = duration
	f.elapsed = 0
	f.active = true
}

// Step advances the fade by dt seconds and samples the level once. It reports
// whether the fade has completed; the completing sample is exactly the target.
func (f *AudioCrossfader) Step(w *ecs.World, dt float64) bool {
	if !f.active {
		return true
	}
	if dt > 0 {
		f.elapsed += dt
	}
	t := f.elapsed / f.duration
	if t >= 1-fadeEpsilon {
		f.Finish(w)
		return true
	}
	f.Set(w, common.Lerp(f.from, f.to, common.Clamp01(t)))
	return false
}

// Finish jumps an in-flight fade to its target.
func (f *AudioCrossfader) Finish(w *ecs.World) {
	if !f.active {
		return
	}
	f.active = false
	f.Set(w, f.to)
}

// Cancel stops the fade where it is.
func (f *AudioCrossfader) Cancel() {
	f.active = false
}

// Set writes the level without fading.
func (f *AudioCrossfader) Set(w *ecs.World, level float64) {
	f.level = level
	if l, ok := listener(w); ok {
		l.Level = level
	}
}

func listener(w *ecs.World) (*component.AudioListener, bool) {
	if w == nil {
		return nil, false
	}
	e, ok := ecs.First(w, component.AudioListenerComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.AudioListenerComponent.Kind())
}
