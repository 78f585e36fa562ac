package system

import (
	"testing"

	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlAuthorityRestoresPriorFlags(t *testing.T) {
	w := ecs.NewWorld()
	on := ecs.CreateEntity(w)
	off := ecs.CreateEntity(w)
	bare := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, on, component.ControlScriptComponent.Kind(), &component.ControlScript{Name: "walk", Enabled: true}))
	require.NoError(t, ecs.Add(w, off, component.ControlScriptComponent.Kind(), &component.ControlScript{Name: "jump", Enabled: false}))

	c := NewControlAuthority()
	c.Suspend(w, []ecs.Entity{on, off, bare, on})
	assert.True(t, c.Suspended())

	onScript, _ := ecs.Get(w, on, component.ControlScriptComponent.Kind())
	offScript, _ := ecs.Get(w, off, component.ControlScriptComponent.Kind())
	assert.False(t, onScript.Enabled)
	assert.False(t, offScript.Enabled)

	// A second suspend must not overwrite the recorded values.
	c.Suspend(w, []ecs.Entity{on})

	c.Resume(w)
	assert.False(t, c.Suspended())
	assert.True(t, onScript.Enabled)
	assert.False(t, offScript.Enabled)
}

func TestControlAuthoritySkipsDestroyedMembers(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ControlScriptComponent.Kind(), &component.ControlScript{Enabled: true}))

	c := NewControlAuthority()
	c.Suspend(w, []ecs.Entity{e})
	ecs.DestroyEntity(w, e)
	assert.NotPanics(t, func() { c.Resume(w) })
}

func TestVisibilityGroup(t *testing.T) {
	w := ecs.NewWorld()
	hands := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, hands, component.VisualComponent.Kind(), &component.Visual{Active: true, Layer: component.LayerHands}))

	v := NewVisibilityGroup()
	v.Hide(w, []ecs.Entity{hands})
	vis, _ := ecs.Get(w, hands, component.VisualComponent.Kind())
	assert.False(t, vis.Active)
	assert.True(t, v.Hidden())

	v.Restore(w)
	assert.True(t, vis.Active)
}
