// Package audio turns simulation events into short synthesized sound effects.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// SampleRate is the output rate for every effect.
const SampleRate = beep.SampleRate(44100)

// Wave selects the tone generator for a note.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Note is a single tone with a linear fade-out.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// Cue is the note sequence played for one event kind.
type Cue []Note

// Duration returns the total length of the cue.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range c {
		d += n.Duration
	}
	return d
}

var cues = map[breakout.EventKind]Cue{
	breakout.EventPaddleBounce: {{Freq: 440, Duration: 40 * time.Millisecond, Wave: WaveSquare}},
	breakout.EventWallBounce:   {{Freq: 220, Duration: 30 * time.Millisecond, Wave: WaveTriangle}},
	breakout.EventBlockHit:     {{Freq: 330, Duration: 40 * time.Millisecond, Wave: WaveSquare}},
	breakout.EventBlockDestroyed: {
		{Freq: 660, Duration: 50 * time.Millisecond, Wave: WaveSine},
	},
	breakout.EventExplosion: {
		{Freq: 110, Duration: 80 * time.Millisecond, Wave: WaveSquare},
		{Freq: 80, Duration: 120 * time.Millisecond, Wave: WaveSquare},
	},
	breakout.EventPowerUpCollected: {
		{Freq: 523.25, Duration: 60 * time.Millisecond, Wave: WaveSine},
		{Freq: 659.25, Duration: 60 * time.Millisecond, Wave: WaveSine},
		{Freq: 783.99, Duration: 90 * time.Millisecond, Wave: WaveSine},
	},
	breakout.EventLevelClear: {
		{Freq: 523.25, Duration: 100 * time.Millisecond, Wave: WaveSquare},
		{Freq: 783.99, Duration: 100 * time.Millisecond, Wave: WaveSquare},
		{Freq: 1046.5, Duration: 200 * time.Millisecond, Wave: WaveSquare},
	},
	breakout.EventGameOver: {
		{Freq: 392, Duration: 150 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 311.13, Duration: 150 * time.Millisecond, Wave: WaveTriangle},
		{Freq: 196, Duration: 300 * time.Millisecond, Wave: WaveTriangle},
	},
}

// CueFor returns the cue for kind, or nil when the kind is silent.
func CueFor(kind breakout.EventKind) Cue {
	return cues[kind]
}

// Countdown cues for the pre-serve ticks and the final "GO!".
var (
	CountdownTick = Cue{{Freq: 880, Duration: 60 * time.Millisecond, Wave: WaveSine}}
	CountdownGo   = Cue{{Freq: 1760, Duration: 150 * time.Millisecond, Wave: WaveSine}}
)

// Stream renders cue at the given volume. It returns nil for an empty cue or
// a silent volume.
func Stream(cue Cue, volume float64) beep.Streamer {
	if len(cue) == 0 || volume <= 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(cue))
	for _, n := range cue {
		if s := noteStreamer(n); s != nil {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return newVolume(beep.Seq(parts...), volume)
}

func noteStreamer(n Note) beep.Streamer {
	var tone beep.Streamer
	if n.Wave == WaveSine {
		sine, err := generators.SineTone(SampleRate, n.Freq)
		if err != nil {
			return nil
		}
		tone = sine
	} else {
		tone = &oscillator{freq: n.Freq, wave: n.Wave}
	}
	total := SampleRate.N(n.Duration)
	return &fade{streamer: beep.Take(total, tone), total: total}
}

// oscillator is an endless square or triangle wave.
type oscillator struct {
	freq  float64
	phase float64
	wave  Wave
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		default:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(SampleRate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade scales samples linearly from full level down to zero.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := range n {
		vol := 0.0
		if f.total > 0 {
			vol = float64(f.total-f.pos) / float64(f.total)
		}
		samples[i][0] *= vol * 0.3
		samples[i][1] *= vol * 0.3
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// vol must be positive; Stream drops silent cues before this point.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

// Player mixes cues onto the speaker. A nil or uninitialized Player is silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player at the given SFX volume.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker. Failure leaves the player silent and is returned so
// the caller can log it.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio: speaker ready", "rate", int(SampleRate))
	return nil
}

// SetVolume changes the SFX volume for cues played afterwards.
func (p *Player) SetVolume(v float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.volume = v
	p.mu.Unlock()
}

// PlayCue queues a single cue.
func (p *Player) PlayCue(cue Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playLocked(cue)
}

// PlayEvents queues one cue per distinct event kind in events, so a frame
// that destroys five blocks plays the destroy sound once.
func (p *Player) PlayEvents(events []breakout.Event) {
	if p == nil || len(events) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[breakout.EventKind]bool, len(events))
	for _, e := range events {
		if seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true
		p.playLocked(CueFor(e.Kind))
	}
}

func (p *Player) playLocked(cue Cue) {
	if !p.initialized {
		return
	}
	s := Stream(cue, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
