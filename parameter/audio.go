package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
)

// Sound shapes
const (
	ExhaustVolume    = 0.18
	ExhaustCutoffHz  = 220.0
	BoomDuration     = 1200 * time.Millisecond
	BoomVolume       = 0.6
	ChimeDuration    = 600 * time.Millisecond
	ChimeFrequencyHz = 880.0
	ChimeVolume      = 0.25
)
