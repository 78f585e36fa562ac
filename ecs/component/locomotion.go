package component

// Locomotion moves Rig from the Input found on the same entity while the
// entity's ControlScript is enabled.
type Locomotion struct {
	Rig       uint64
	MoveSpeed float64 // units per second
	TurnSpeed float64 // radians per second
}

var LocomotionComponent = NewComponent[Locomotion]()
