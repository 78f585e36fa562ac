package entity

import (
	"fmt"

	"github.com/milk9111/viewpoint/assets"
	"github.com/milk9111/viewpoint/ecs/component"
	"github.com/milk9111/viewpoint/prefabs"
)

// loadAudioPlayer is swapped out in tests so prefabs can be built without an
// audio device.
var loadAudioPlayer = func(file string, loop bool) (component.AudioPlayer, error) {
	p, err := assets.LoadAudioPlayer(file, loop)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func buildAudioComponent(clips []prefabs.AudioClipSpec) (*component.Audio, error) {
	n := len(clips)
	names := make([]string, 0, n)
	players := make([]component.AudioPlayer, 0, n)
	volume := make([]float64, 0, n)

	for i, clip := range clips {
		player, err := loadAudioPlayer(clip.File, clip.Loop)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		vol := clip.Volume
		if vol == 0 {
			vol = 1
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, vol)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}, nil
}
