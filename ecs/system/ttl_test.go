package system

import (
	"testing"

	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLExpiresOnWorldTime(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.25)
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.5}))

	sys := NewTTLSystem()
	sys.Update(w)
	assert.True(t, ecs.IsAlive(w, e))
	sys.Update(w)
	assert.False(t, ecs.IsAlive(w, e))
}
