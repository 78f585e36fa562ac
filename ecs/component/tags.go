package component

// PlayerTag marks the root of the player rig.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// ViewpointTag marks a transform that can be possessed.
type ViewpointTag struct{}

var ViewpointTagComponent = NewComponent[ViewpointTag]()

// StandInTag marks the entity left behind at the player's saved frame.
type StandInTag struct{}

var StandInTagComponent = NewComponent[StandInTag]()
