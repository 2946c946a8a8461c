package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-lander/event"
	"github.com/lixenwraith/vi-lander/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// SoundManager manages all lander audio
type SoundManager struct {
	mu             sync.Mutex
	exhaustControl *beep.Ctrl
	mixer          *beep.Mixer
	volume         *effects.Volume
	initialized    bool
	muted          bool

	// Output pulled by the owner through Output instead of the speaker
	detached bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Detach marks the manager live without opening the speaker; the owner pulls samples from Output
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.initialized = true
	sm.detached = true
}

// Output is the final streamer, mixer through the mute stage
func (sm *SoundManager) Output() beep.Streamer {
	return sm.volume
}

// Cleanup stops all sounds and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.locked(func() {
		if sm.exhaustControl != nil {
			sm.exhaustControl.Paused = true
		}
		sm.mixer.Clear()
	})
	if !sm.detached {
		speaker.Clear()
	}
	sm.exhaustControl = nil
	sm.initialized = false
}

// Subscribe wires sounds to lifecycle events
func (sm *SoundManager) Subscribe(r *event.Router) {
	r.Subscribe(event.EventThrustStart, func(event.GameEvent) { sm.StartExhaust() })
	r.Subscribe(event.EventThrustStop, func(event.GameEvent) { sm.StopExhaust() })
	r.Subscribe(event.EventLanded, func(event.GameEvent) {
		sm.StopExhaust()
		sm.PlayChime()
	})
	r.Subscribe(event.EventExploded, func(event.GameEvent) {
		sm.StopExhaust()
		sm.PlayBoom()
	})
	r.Subscribe(event.EventMuteToggle, func(event.GameEvent) { sm.ToggleMute() })
}

// StartExhaust starts the looping exhaust rumble
func (sm *SoundManager) StartExhaust() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// If already playing, don't restart
	if sm.exhaustControl != nil && !sm.exhaustControl.Paused {
		return
	}

	sm.locked(func() {
		if sm.exhaustControl != nil {
			sm.exhaustControl.Paused = false
			return
		}
		rumble := NewRumbleGenerator(sampleRate, parameter.ExhaustCutoffHz, parameter.ExhaustVolume)
		sm.exhaustControl = &beep.Ctrl{Streamer: rumble}
		sm.mixer.Add(sm.exhaustControl)
	})
}

// StopExhaust pauses the exhaust rumble
func (sm *SoundManager) StopExhaust() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.exhaustControl == nil || !sm.initialized {
		return
	}
	sm.locked(func() { sm.exhaustControl.Paused = true })
}

// PlayBoom plays the explosion once
func (sm *SoundManager) PlayBoom() {
	sm.play(NewBoomGenerator(sampleRate, parameter.BoomDuration, parameter.BoomVolume))
}

// PlayChime plays the landing chime once
func (sm *SoundManager) PlayChime() {
	sm.play(NewChimeGenerator(sampleRate, parameter.ChimeDuration, parameter.ChimeFrequencyHz, parameter.ChimeVolume))
}

// ToggleMute silences or restores output without stopping streams
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	sm.locked(func() { sm.volume.Silent = sm.muted })
	return sm.muted
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// ExhaustPlaying reports whether the exhaust loop is audible
func (sm *SoundManager) ExhaustPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.exhaustControl != nil && !sm.exhaustControl.Paused
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.locked(func() { sm.mixer.Add(s) })
}

// locked runs fn under the speaker lock when the speaker goroutine is consuming the mixer
// Caller holds sm.mu
func (sm *SoundManager) locked(fn func()) {
	if sm.initialized && !sm.detached {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
