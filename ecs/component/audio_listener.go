package component

// AudioListener is the global listener gain applied on top of every clip's
// own volume. Exactly one should exist.
type AudioListener struct {
	Level float64
}

var AudioListenerComponent = NewComponent[AudioListener]()
