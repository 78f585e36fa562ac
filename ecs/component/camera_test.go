package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerMask(t *testing.T) {
	mask, err := LayerMask("default", "Drone", " hands ")
	require.NoError(t, err)
	assert.Equal(t, LayerDefault|LayerDrone|LayerHands, mask)

	_, err = LayerMask("default", "sky")
	assert.Error(t, err)

	empty, err := LayerMask()
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestCameraSees(t *testing.T) {
	cam := &Camera{CullingMask: LayerDefault | LayerDrone}
	assert.True(t, cam.Sees(LayerDrone))
	assert.False(t, cam.Sees(LayerHands))
}
