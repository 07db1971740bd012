// Package audio plays short synthesised cues for player events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues. Implementations must not block the frame loop.
type Player interface {
	Play(c Cue)
	Close()
}

// Nop discards every cue. It is used when audio is disabled or the audio
// device cannot be opened.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}

// SpeakerPlayer mixes cues into the system speaker
type SpeakerPlayer struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerPlayer opens the speaker at sampleRate and starts the mixer.
func NewSpeakerPlayer(sampleRate int, volume float64) (*SpeakerPlayer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	rate := beep.SampleRate(sampleRate)

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p := &SpeakerPlayer{
		rate:        rate,
		volume:      volume,
		mixer:       &beep.Mixer{},
		initialized: true,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play starts a cue on top of whatever is playing
func (p *SpeakerPlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := c.Streamer(p.rate, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the audio device
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
