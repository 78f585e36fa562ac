package component

// Input stores per-frame input state for an entity. The *Pressed and
// *Released fields are edges and hold for a single frame.
type Input struct {
	MoveX float64
	MoveZ float64
	Turn  float64

	PossessHeld     bool
	PossessPressed  bool
	PossessReleased bool
	TeleportPressed bool
}

var InputComponent = NewComponent[Input]()
