package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from one value to
// another over its duration.
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(1)),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (s.phase - 0.5)
		case WaveNoise:
			val = s.rng.Float64()*2 - 1
		}

		// Linear decay so cues end without a click
		val *= 1 - float64(s.position)/float64(s.duration)

		samples[i][0] = val
		samples[i][1] = val

		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// newVolume wraps s in a volume effect. vol is a base-2 exponent; 0 leaves
// the level unchanged.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol}
}

// Cue is a sound effect triggered by the game
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueBump
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueBump:
		return "bump"
	default:
		return "unknown"
	}
}

// Streamer builds the sound for a cue
func (c Cue) Streamer(rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueJump:
		s = NewSweep(300, 720, 120*time.Millisecond, WaveSquare, rate)
	case CueLand:
		s = NewSweep(160, 60, 90*time.Millisecond, WaveNoise, rate)
	case CueBump:
		s = beep.Seq(
			NewSweep(220, 180, 50*time.Millisecond, WaveSaw, rate),
			NewSweep(180, 110, 70*time.Millisecond, WaveSaw, rate),
		)
	default:
		s = beep.Silence(0)
	}
	// Leave headroom for overlapping cues
	return newVolume(s, vol-1)
}
