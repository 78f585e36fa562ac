package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a local pose relative to Parent. A zero Parent means the pose
// is expressed in world space. A zero Rotation is treated as identity.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Parent   uint64 // ecs.Entity; 0 = world
}

// NewTransform returns a transform at pos with identity rotation.
func NewTransform(pos mgl64.Vec3) *Transform {
	return &Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// Orientation returns Rotation, substituting identity for the zero value.
func (t *Transform) Orientation() mgl64.Quat {
	if t == nil || (t.Rotation.W == 0 && t.Rotation.V == (mgl64.Vec3{})) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

var TransformComponent = NewComponent[Transform]()
