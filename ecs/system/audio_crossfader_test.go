package system

import (
	"testing"

	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListenerWorld(t *testing.T, level float64) (*ecs.World, *component.AudioListener) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.AudioListenerComponent.Kind(), &component.AudioListener{Level: level}))
	l, _ := ecs.Get(w, e, component.AudioListenerComponent.Kind())
	return w, l
}

func TestCrossfaderReachesTargetExactly(t *testing.T) {
	w, l := newListenerWorld(t, 1)
	f := NewAudioCrossfader()
	f.FadeTo(w, 0, 0.3)

	steps := 0
	for !f.Step(w, 0.1) {
		steps++
		assert.Greater(t, l.Level, 0.0)
		require.Less(t, steps, 10)
	}
	assert.Equal(t, 0.0, l.Level)
	assert.False(t, f.Active())
}

func TestCrossfaderRestartsFromCurrentLevel(t *testing.T) {
	w, l := newListenerWorld(t, 1)
	f := NewAudioCrossfader()
	f.FadeTo(w, 0, 1)
	f.Step(w, 0.5)
	assert.InDelta(t, 0.5, l.Level, 1e-12)

	f.FadeTo(w, 1, 1)
	f.Step(w, 0.5)
	assert.InDelta(t, 0.75, l.Level, 1e-12)
}

func TestCrossfaderNonPositiveDurationIsImmediate(t *testing.T) {
	for _, d := range []float64{0, -1} {
		w, l := newListenerWorld(t, 1)
		f := NewAudioCrossfader()
		f.FadeTo(w, 0.25, d)
		assert.False(t, f.Active())
		assert.Equal(t, 0.25, l.Level)
		assert.True(t, f.Step(w, 0.1))
	}
}

func TestCrossfaderClampsTarget(t *testing.T) {
	w, l := newListenerWorld(t, 0.5)
	f := NewAudioCrossfader()
	f.FadeTo(w, 3, 0.1)
	f.Step(w, 1)
	assert.Equal(t, 1.0, l.Level)
}

func TestCrossfaderWithoutListener(t *testing.T) {
	w := ecs.NewWorld()
	f := NewAudioCrossfader()
	assert.Equal(t, 1.0, f.Level(w))
	f.FadeTo(w, 0, 0.2)
	f.Step(w, 0.1)
	assert.InDelta(t, 0.5, f.Level(w), 1e-12)
	f.Finish(w)
	assert.Equal(t, 0.0, f.Level(w))
}
