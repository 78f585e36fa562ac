package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/common"
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocomotionFollowsInputWhileEnabled(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.5)
	rig := spawn(t, w, mgl64.Vec3{})
	require.NoError(t, ecs.Add(w, rig, component.LocomotionComponent.Kind(), &component.Locomotion{MoveSpeed: 2, TurnSpeed: math.Pi}))
	require.NoError(t, ecs.Add(w, rig, component.InputComponent.Kind(), &component.Input{MoveZ: 1}))
	require.NoError(t, ecs.Add(w, rig, component.ControlScriptComponent.Kind(), &component.ControlScript{Name: "walk", Enabled: true}))

	sys := NewLocomotionSystem()
	sys.Update(w)
	pos, _ := ecs.WorldPosition(w, rig)
	assertNear(t, mgl64.Vec3{0, 0, 1}, pos, "got %v", pos)

	in, _ := ecs.Get(w, rig, component.InputComponent.Kind())
	in.MoveZ = 0
	in.Turn = 1
	sys.Update(w)
	rot, _ := ecs.WorldRotation(w, rig)
	assert.InDelta(t, math.Pi/2, common.Yaw(rot), 1e-9)

	script, _ := ecs.Get(w, rig, component.ControlScriptComponent.Kind())
	script.Enabled = false
	in.Turn = 0
	in.MoveZ = 1
	sys.Update(w)
	after, _ := ecs.WorldPosition(w, rig)
	assert.Equal(t, pos, after, "disabled control script freezes the rig")
}

func TestLocomotionDrivesSeparateRig(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(1)
	rig := spawn(t, w, mgl64.Vec3{})
	controller := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, controller, component.LocomotionComponent.Kind(), &component.Locomotion{Rig: uint64(rig), MoveSpeed: 3}))
	require.NoError(t, ecs.Add(w, controller, component.InputComponent.Kind(), &component.Input{MoveX: 1, MoveZ: 1}))
	require.NoError(t, ecs.Add(w, controller, component.ControlScriptComponent.Kind(), &component.ControlScript{Enabled: true}))

	NewLocomotionSystem().Update(w)
	pos, _ := ecs.WorldPosition(w, rig)
	assert.InDelta(t, 3, pos.Len(), 1e-9, "diagonal input is normalized")
}
