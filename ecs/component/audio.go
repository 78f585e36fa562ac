package component

// AudioPlayer is the subset of *audio.Player the audio system drives.
type AudioPlayer interface {
	SetVolume(volume float64)
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
}

// Audio holds named clips. Play and Stop are one-shot flags consumed by the
// audio system on the next update.
type Audio struct {
	Names   []string
	Players []AudioPlayer
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request flags the named clip to play. It reports whether the clip exists.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
