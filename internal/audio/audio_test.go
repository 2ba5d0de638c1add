package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestStreamLengthMatchesCue(t *testing.T) {
	kinds := []breakout.EventKind{
		breakout.EventPaddleBounce,
		breakout.EventWallBounce,
		breakout.EventBlockHit,
		breakout.EventBlockDestroyed,
		breakout.EventExplosion,
		breakout.EventPowerUpCollected,
		breakout.EventLevelClear,
		breakout.EventGameOver,
	}

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			cue := CueFor(k)
			if len(cue) == 0 {
				t.Fatalf("no cue for %v", k)
			}
			want := 0
			for _, n := range cue {
				want += SampleRate.N(n.Duration)
			}
			got, _ := drain(t, Stream(cue, 1))
			if got != want {
				t.Errorf("streamed %d samples, expected %d", got, want)
			}
		})
	}
}

func TestStreamSilentCases(t *testing.T) {
	if Stream(CueFor(breakout.EventPaddleBounce), 0) != nil {
		t.Error("zero volume should produce no streamer")
	}
	if Stream(CueFor(breakout.EventPaddleBounce), -0.5) != nil {
		t.Error("negative volume should produce no streamer")
	}
	if Stream(nil, 1) != nil {
		t.Error("empty cue should produce no streamer")
	}
	if CueFor(breakout.EventKind(99)) != nil {
		t.Error("unknown kind should have no cue")
	}
}

func TestStreamVolumeScalesPeak(t *testing.T) {
	cue := Cue{{Freq: 440, Duration: 20 * time.Millisecond, Wave: WaveSquare}}
	_, loud := drain(t, Stream(cue, 1))
	_, quiet := drain(t, Stream(cue, 0.25))

	if loud <= 0 {
		t.Fatal("full volume should be audible")
	}
	if quiet >= loud {
		t.Errorf("quarter volume peak %f should be below full volume peak %f", quiet, loud)
	}
}

func TestOscillatorRange(t *testing.T) {
	for _, w := range []Wave{WaveSquare, WaveTriangle} {
		o := &oscillator{freq: 330, wave: w}
		buf := make([][2]float64, 1000)
		n, ok := o.Stream(buf)
		if n != len(buf) || !ok {
			t.Fatalf("oscillator should fill the buffer, got n=%d ok=%v", n, ok)
		}
		for i := range n {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("wave %d sample %d out of range: %f", w, i, buf[i][0])
			}
		}
	}
}

func TestCountdownCues(t *testing.T) {
	if CountdownTick.Duration() >= CountdownGo.Duration() {
		t.Error("GO cue should outlast the tick cue")
	}
}

func TestPlayerWithoutSpeakerIsSilent(t *testing.T) {
	var nilPlayer *Player
	nilPlayer.PlayEvents([]breakout.Event{{Kind: breakout.EventPaddleBounce}})
	nilPlayer.PlayCue(CountdownGo)
	nilPlayer.SetVolume(1)
	nilPlayer.Close()

	p := NewPlayer(0.5, nil)
	p.PlayEvents([]breakout.Event{{Kind: breakout.EventBlockDestroyed}})
	p.Close()
}
