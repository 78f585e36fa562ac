package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPursuitMovesTowardTarget(t *testing.T) {
	cases := []struct {
		name   string
		stop   float64
		frames int
		want   mgl64.Vec3
	}{
		{"one_step", 0, 1, mgl64.Vec3{1, 0, 0}},
		{"arrives", 0, 40, mgl64.Vec3{10, 0, 0}},
		{"stops_short", 2, 40, mgl64.Vec3{8, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDeltaTime(0.5)
			target := spawn(t, w, mgl64.Vec3{10, 0, 0})
			agent := spawn(t, w, mgl64.Vec3{})
			require.NoError(t, ecs.Add(w, agent, component.PursuerComponent.Kind(), &component.Pursuer{Target: uint64(target), Speed: 2, StopDistance: tc.stop}))

			s := NewPursuitSystem()
			for i := 0; i < tc.frames; i++ {
				s.Update(w)
			}
			pos, _ := ecs.WorldPosition(w, agent)
			assertNear(t, tc.want, pos, "got %v", pos)
		})
	}
}

func TestPursuitIgnoresMissingTarget(t *testing.T) {
	w := ecs.NewWorld()
	gone := spawn(t, w, mgl64.Vec3{10, 0, 0})
	agent := spawn(t, w, mgl64.Vec3{1, 2, 3})
	require.NoError(t, ecs.Add(w, agent, component.PursuerComponent.Kind(), &component.Pursuer{Target: uint64(gone), Speed: 2}))
	ecs.DestroyEntity(w, gone)

	NewPursuitSystem().Update(w)
	pos, _ := ecs.WorldPosition(w, agent)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, pos)
}

func TestPursuitScriptSteers(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.1)
	target := spawn(t, w, mgl64.Vec3{0, 0, 20})
	agent := spawn(t, w, mgl64.Vec3{})
	require.NoError(t, ecs.Add(w, agent, component.PursuerComponent.Kind(), &component.Pursuer{
		Target:       uint64(target),
		Speed:        4,
		StopDistance: 1,
		Script:       "drone_pursuit.tengo",
	}))

	s := NewPursuitSystem()
	prev := 0.0
	for i := 0; i < 20; i++ {
		s.Update(w)
		pos, _ := ecs.WorldPosition(w, agent)
		assert.Greater(t, pos.Z(), prev)
		assert.Less(t, pos.Z(), 20.0)
		prev = pos.Z()
	}
	assert.False(t, s.failed["drone_pursuit.tengo"])
}

func TestPursuitFallsBackWhenScriptMissing(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.5)
	target := spawn(t, w, mgl64.Vec3{10, 0, 0})
	agent := spawn(t, w, mgl64.Vec3{})
	require.NoError(t, ecs.Add(w, agent, component.PursuerComponent.Kind(), &component.Pursuer{Target: uint64(target), Speed: 2, Script: "missing.tengo"}))

	s := NewPursuitSystem()
	s.Update(w)
	pos, _ := ecs.WorldPosition(w, agent)
	assertNear(t, mgl64.Vec3{1, 0, 0}, pos)
	assert.True(t, s.failed["missing.tengo"])

	s.InvalidateScripts()
	assert.Empty(t, s.failed)
}
