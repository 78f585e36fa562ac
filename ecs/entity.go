package ecs

import "fmt"

// Entity is a generational handle. The low half is a 1-based slot and the
// high half counts how often that slot has been recycled, so a handle kept
// past DestroyEntity stops resolving once the slot is reused.
type Entity uint64

const slotBits = 32

func packEntity(slot, gen uint32) Entity {
	return Entity(uint64(gen)<<slotBits | uint64(slot))
}

// Slot is the storage index the handle points at. Zero means no entity.
func (e Entity) Slot() uint32 {
	return uint32(e)
}

// Generation is the slot's recycle count when the handle was issued.
func (e Entity) Generation() uint32 {
	return uint32(uint64(e) >> slotBits)
}

// Valid reports whether the handle names a slot at all. It does not check
// liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.Slot() != 0
}

// String prints the handle as slot and generation, e.g. "7v2".
func (e Entity) String() string {
	if !e.Valid() {
		return "none"
	}
	return fmt.Sprintf("%dv%d", e.Slot(), e.Generation())
}
