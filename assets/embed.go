package assets

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

//go:embed *.wav
var assetsFS embed.FS

var (
	audioContext     *audio.Context
	audioContextOnce sync.Once
)

// AudioContext returns the process-wide audio context, creating it on first
// use. Ebiten allows only one.
func AudioContext() *audio.Context {
	audioContextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
// With loop set the clip repeats until paused.
func LoadAudioPlayer(path string, loop bool) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(path))
	if !strings.HasSuffix(clean, ".wav") {
		return nil, fmt.Errorf("audio %q: unsupported format", path)
	}

	ctx := AudioContext()
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	if loop {
		return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	}
	return ctx.NewPlayer(stream)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
