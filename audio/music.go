// Package audio plays the looping background track through raylib.
package audio

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNotLoaded is returned by Play when no track is loaded.
var ErrNotLoaded = errors.New("audio: music not loaded")

// Music streams one looping track. A nil *Music is safe to Update and Close.
type Music struct {
	stream  rl.Music
	loaded  bool
	playing bool
}

// Open initializes the audio device and loads the track at path.
func Open(path string) (*Music, error) {
	if path == "" {
		return nil, fmt.Errorf("audio: empty path")
	}

	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
		return nil, fmt.Errorf("audio: device not ready")
	}

	stream := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(stream) {
		rl.CloseAudioDevice()
		return nil, fmt.Errorf("audio: loading %s failed", path)
	}
	stream.Looping = true

	return &Music{stream: stream, loaded: true}, nil
}

// SetVolume sets the playback volume in [0, 1].
func (m *Music) SetVolume(v float64) {
	if m == nil || !m.loaded {
		return
	}
	rl.SetMusicVolume(m.stream, float32(v))
}

// Play starts the track.
func (m *Music) Play() error {
	if m == nil || !m.loaded {
		return ErrNotLoaded
	}
	rl.PlayMusicStream(m.stream)
	m.playing = true
	return nil
}

// Update refills the stream buffers. Call once per frame.
func (m *Music) Update() {
	if m == nil || !m.playing {
		return
	}
	rl.UpdateMusicStream(m.stream)
}

// Close stops playback and releases the device.
func (m *Music) Close() {
	if m == nil || !m.loaded {
		return
	}
	rl.StopMusicStream(m.stream)
	rl.UnloadMusicStream(m.stream)
	rl.CloseAudioDevice()
	m.loaded = false
	m.playing = false
}
