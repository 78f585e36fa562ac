package ecs

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/viewpoint/ecs/component"
)

// maxHierarchyDepth bounds parent walks so a corrupted chain cannot spin.
const maxHierarchyDepth = 64

var ErrHierarchyCycle = errors.New("ecs: parent would create a cycle")

// Parent returns the live parent of e. A parent that has been destroyed is
// reported as absent, so the child falls back to world space.
func Parent(w *World, e Entity) (Entity, bool) {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok || t.Parent == 0 {
		return 0, false
	}
	p := Entity(t.Parent)
	if !IsAlive(w, p) {
		return 0, false
	}
	return p, true
}

// WorldTransform composes e's local pose with every ancestor's.
func WorldTransform(w *World, e Entity) (mgl64.Vec3, mgl64.Quat, bool) {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	pos := t.Position
	rot := t.Orientation()
	cur := e
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		p, ok := Parent(w, cur)
		if !ok {
			break
		}
		pt, _ := Get(w, p, component.TransformComponent.Kind())
		prot := pt.Orientation()
		pos = prot.Rotate(pos).Add(pt.Position)
		rot = prot.Mul(rot).Normalize()
		cur = p
	}
	return pos, rot, true
}

// WorldPosition returns e's position in world space.
func WorldPosition(w *World, e Entity) (mgl64.Vec3, bool) {
	pos, _, ok := WorldTransform(w, e)
	return pos, ok
}

// WorldRotation returns e's orientation in world space.
func WorldRotation(w *World, e Entity) (mgl64.Quat, bool) {
	_, rot, ok := WorldTransform(w, e)
	return rot, ok
}

// SetWorldPosition moves e so its world position equals pos.
func SetWorldPosition(w *World, e Entity, pos mgl64.Vec3) bool {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	p, hasParent := Parent(w, e)
	if !hasParent {
		t.Position = pos
		return true
	}
	ppos, prot, _ := WorldTransform(w, p)
	t.Position = prot.Inverse().Rotate(pos.Sub(ppos))
	return true
}

// SetWorldRotation orients e so its world rotation equals rot.
func SetWorldRotation(w *World, e Entity, rot mgl64.Quat) bool {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	p, hasParent := Parent(w, e)
	if !hasParent {
		t.Rotation = rot
		return true
	}
	_, prot, _ := WorldTransform(w, p)
	t.Rotation = prot.Inverse().Mul(rot).Normalize()
	return true
}

// SetWorldPose sets both world position and rotation.
func SetWorldPose(w *World, e Entity, pos mgl64.Vec3, rot mgl64.Quat) bool {
	// Rotation first: it does not depend on position, position does not
	// depend on e's own rotation.
	return SetWorldRotation(w, e, rot) && SetWorldPosition(w, e, pos)
}

// SetParent re-parents child. A zero parent detaches to world space. With
// keepWorld the child's world pose is unchanged by the re-parent.
func SetParent(w *World, child, parent Entity, keepWorld bool) error {
	t, ok := Get(w, child, component.TransformComponent.Kind())
	if !ok {
		return component.ErrEntityNotAlive
	}
	if parent != 0 {
		if !Has(w, parent, component.TransformComponent.Kind()) {
			return component.ErrEntityNotAlive
		}
		if IsDescendant(w, parent, child) {
			return ErrHierarchyCycle
		}
	}
	pos, rot, _ := WorldTransform(w, child)
	t.Parent = uint64(parent)
	if keepWorld {
		SetWorldPose(w, child, pos, rot)
	}
	return nil
}

// Root returns the top-most live ancestor of e (e itself when unparented).
func Root(w *World, e Entity) Entity {
	cur := e
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		p, ok := Parent(w, cur)
		if !ok {
			break
		}
		cur = p
	}
	return cur
}

// IsDescendant reports whether e is ancestor or lies beneath it.
func IsDescendant(w *World, e, ancestor Entity) bool {
	cur := e
	for depth := 0; depth <= maxHierarchyDepth; depth++ {
		if cur == ancestor {
			return true
		}
		p, ok := Parent(w, cur)
		if !ok {
			return false
		}
		cur = p
	}
	return false
}

// Lineage returns e followed by its ancestors, nearest first.
func Lineage(w *World, e Entity) []Entity {
	if !IsAlive(w, e) {
		return nil
	}
	out := []Entity{e}
	cur := e
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		p, ok := Parent(w, cur)
		if !ok {
			break
		}
		out = append(out, p)
		cur = p
	}
	return out
}
