package component

import (
	"fmt"
	"strings"
)

// Layer bits understood by the render pass.
const (
	LayerDefault    uint32 = 1 << 0
	LayerHands      uint32 = 1 << 1
	LayerPlayerBody uint32 = 1 << 2
	LayerDrone      uint32 = 1 << 3

	LayerAll = ^uint32(0)
)

var layerNames = map[string]uint32{
	"default":     LayerDefault,
	"hands":       LayerHands,
	"player_body": LayerPlayerBody,
	"drone":       LayerDrone,
	"all":         LayerAll,
}

// LayerByName resolves a single layer name.
func LayerByName(name string) (uint32, error) {
	bit, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown layer %q", name)
	}
	return bit, nil
}

// LayerMask ORs the named layers together.
func LayerMask(names ...string) (uint32, error) {
	var mask uint32
	for _, n := range names {
		bit, err := LayerByName(n)
		if err != nil {
			return 0, err
		}
		mask |= bit
	}
	return mask, nil
}

// Camera is the player's eye. It is a child of the rig; its local position is
// the rig-to-head offset.
type Camera struct {
	CullingMask uint32
	Main        bool
}

// Sees reports whether layer passes the culling mask.
func (c *Camera) Sees(layer uint32) bool {
	if c == nil {
		return true
	}
	return c.CullingMask&layer != 0
}

var CameraComponent = NewComponent[Camera]()
