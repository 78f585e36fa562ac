package ecs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnAt(t *testing.T, w *World, pos mgl64.Vec3) Entity {
	t.Helper()
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, component.TransformComponent.Kind(), component.NewTransform(pos)))
	return e
}

func assertVecNear(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-9, msgAndArgs...)
}

func assertQuatNear(t *testing.T, want, got mgl64.Quat, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, []float64{want.W, want.V[0], want.V[1], want.V[2]}, []float64{got.W, got.V[0], got.V[1], got.V[2]}, 1e-9, msgAndArgs...)
}

func TestWorldTransformComposesParents(t *testing.T) {
	w := NewWorld()
	root := spawnAt(t, w, mgl64.Vec3{10, 0, 0})
	rootT, _ := Get(w, root, component.TransformComponent.Kind())
	rootT.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	child := spawnAt(t, w, mgl64.Vec3{0, 0, 1})
	childT, _ := Get(w, child, component.TransformComponent.Kind())
	childT.Parent = uint64(root)

	pos, ok := WorldPosition(w, child)
	require.True(t, ok)
	// +Z rotated a quarter turn about +Y lands on +X.
	assertVecNear(t, mgl64.Vec3{11, 0, 0}, pos, "got %v", pos)
}

func TestSetParentKeepsWorldPose(t *testing.T) {
	w := NewWorld()
	platform := spawnAt(t, w, mgl64.Vec3{5, 2, -3})
	platT, _ := Get(w, platform, component.TransformComponent.Kind())
	platT.Rotation = mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0})

	rig := spawnAt(t, w, mgl64.Vec3{1, 0, 1})
	before, beforeRot, _ := WorldTransform(w, rig)

	require.NoError(t, SetParent(w, rig, platform, true))
	after, afterRot, _ := WorldTransform(w, rig)
	assertVecNear(t, after, before, "position moved: %v -> %v", before, after)
	assertQuatNear(t, afterRot, beforeRot)

	p, ok := Parent(w, rig)
	require.True(t, ok)
	assert.Equal(t, platform, p)

	require.NoError(t, SetParent(w, rig, 0, true))
	detached, _ := WorldPosition(w, rig)
	assertVecNear(t, detached, before)
	_, ok = Parent(w, rig)
	assert.False(t, ok)
}

func TestSetParentRejectsCycle(t *testing.T) {
	w := NewWorld()
	a := spawnAt(t, w, mgl64.Vec3{})
	b := spawnAt(t, w, mgl64.Vec3{})
	require.NoError(t, SetParent(w, b, a, true))
	assert.ErrorIs(t, SetParent(w, a, b, true), ErrHierarchyCycle)
}

func TestRootAndLineage(t *testing.T) {
	w := NewWorld()
	drone := spawnAt(t, w, mgl64.Vec3{})
	gimbal := spawnAt(t, w, mgl64.Vec3{0, -0.2, 0})
	lens := spawnAt(t, w, mgl64.Vec3{0, 0, 0.1})
	require.NoError(t, SetParent(w, gimbal, drone, false))
	require.NoError(t, SetParent(w, lens, gimbal, false))

	assert.Equal(t, drone, Root(w, lens))
	assert.Equal(t, []Entity{lens, gimbal, drone}, Lineage(w, lens))
	assert.True(t, IsDescendant(w, lens, drone))
	assert.False(t, IsDescendant(w, drone, lens))
}

func TestDestroyedParentFallsBackToWorld(t *testing.T) {
	w := NewWorld()
	parent := spawnAt(t, w, mgl64.Vec3{100, 0, 0})
	child := spawnAt(t, w, mgl64.Vec3{1, 0, 0})
	require.NoError(t, SetParent(w, child, parent, false))

	DestroyEntity(w, parent)
	pos, ok := WorldPosition(w, child)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, pos)
	assert.Equal(t, child, Root(w, child))
}
