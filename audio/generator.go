package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// RumbleGenerator is low-passed noise with a slow throb, looped for the exhaust
type RumbleGenerator struct {
	sr     beep.SampleRate
	pos    int
	seed   uint32
	alpha  float64
	last   float64
	volume float64
}

// NewRumbleGenerator creates an exhaust generator with a one-pole low-pass at cutoffHz
func NewRumbleGenerator(sr beep.SampleRate, cutoffHz, volume float64) *RumbleGenerator {
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / float64(sr)
	return &RumbleGenerator{
		sr:     sr,
		seed:   0x12345678,
		alpha:  dt / (rc + dt),
		volume: volume,
	}
}

func (g *RumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// xorshift noise
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		g.last += g.alpha * (noise - g.last)
		throb := 0.8 + 0.2*math.Sin(2*math.Pi*7*t)
		sample := g.volume * throb * g.last * 4

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RumbleGenerator) Err() error {
	return nil
}

// BoomGenerator is a decaying noise burst over a falling sub tone
type BoomGenerator struct {
	sr     beep.SampleRate
	pos    int
	total  int
	seed   int64
	volume float64
}

// NewBoomGenerator creates an explosion generator lasting d
func NewBoomGenerator(sr beep.SampleRate, d time.Duration, volume float64) *BoomGenerator {
	return &BoomGenerator{sr: sr, total: sr.N(d), seed: 1969, volume: volume}
}

func (g *BoomGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 4)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		freq := 30 + 60*math.Exp(-t*6)
		sub := math.Sin(2 * math.Pi * freq * t)

		sample := g.volume * envelope * (0.6*noise + 0.4*sub)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BoomGenerator) Err() error {
	return nil
}

// ChimeGenerator is a two-note rising bell
type ChimeGenerator struct {
	sr     beep.SampleRate
	pos    int
	total  int
	freq   float64
	volume float64
}

// NewChimeGenerator creates a landing chime lasting d, second note a fifth above freq
func NewChimeGenerator(sr beep.SampleRate, d time.Duration, freq, volume float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, total: sr.N(d), freq: freq, volume: volume}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	half := g.total / 2
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		local := g.pos
		freq := g.freq
		if g.pos >= half {
			local -= half
			freq *= 1.5
		}
		t := float64(local) / float64(g.sr)
		envelope := math.Exp(-t * 6)
		sample := g.volume * envelope * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
