package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestSweepLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := NewSweep(200, 400, 100*time.Millisecond, WaveSine, rate)

	total, peak := drain(s)
	if want := rate.N(100 * time.Millisecond); total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak > 1.0 || peak == 0 {
		t.Errorf("Expected peak in (0, 1], got %f", peak)
	}
	if s.Err() != nil {
		t.Errorf("Expected no error, got: %v", s.Err())
	}
}

func TestSweepEndsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	s := NewSweep(440, 440, 10*time.Millisecond, WaveSquare, rate)

	buf := make([][2]float64, rate.N(10*time.Millisecond))
	n, _ := s.Stream(buf)
	last := buf[n-1][0]
	if math.Abs(last) > 0.05 {
		t.Errorf("Expected the decay to end near zero, got %f", last)
	}

	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Errorf("Expected exhausted stream, got n=%d ok=%v", n, ok)
	}
}

func TestCueStreamers(t *testing.T) {
	rate := beep.SampleRate(22050)
	for _, c := range []Cue{CueJump, CueLand, CueBump} {
		total, peak := drain(c.Streamer(rate, 0))
		if total == 0 {
			t.Errorf("%s: Expected samples", c)
		}
		// Cues are attenuated by one step of base 2.
		if peak > 0.5+1e-9 {
			t.Errorf("%s: Expected peak at most 0.5, got %f", c, peak)
		}
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	p.Play(CueJump)
	p.Close()
}
