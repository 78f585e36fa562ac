package system

import (
	"github.com/milk9111/viewpoint/ecs"
	"github.com/milk9111/viewpoint/ecs/component"
)

// AudioSystem starts and stops requested clips and keeps every player's
// volume at clip volume times the listener level.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	level := 1.0
	if l, ok := listener(w); ok {
		level = l.Level
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Players)
		for i := 0; i < count; i++ {
			player := audioComp.Players[i]
			if player == nil {
				continue
			}
			vol := 1.0
			if i < len(audioComp.Volume) {
				vol = audioComp.Volume[i]
			}
			player.SetVolume(vol * level)

			if i < len(audioComp.Play) && audioComp.Play[i] {
				audioComp.Play[i] = false
				if !player.IsPlaying() {
					_ = player.Rewind()
					player.Play()
				}
			}
			if i < len(audioComp.Stop) && audioComp.Stop[i] {
				audioComp.Stop[i] = false
				if player.IsPlaying() {
					player.Pause()
				}
			}
		}
	})
}
