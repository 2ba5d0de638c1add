// Package settings persists the small key/value records the game keeps
// between sessions: the top-3 score table and the audio volumes.
package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Record keys.
const (
	KeyScores = "scores"
	KeyAudio  = "audio"
)

// AppName is the gdata application directory.
const AppName = "tui-breakout"

const kvObject = "breakout"

// KV is a string key/value store.
type KV interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// GdataKV stores records as gdata object properties. A nil manager runs in
// degraded mode: loads miss and saves are dropped.
type GdataKV struct {
	mu     sync.Mutex
	m      *gdata.Manager
	logger *log.Logger
}

// OpenGdata opens the per-user data directory. When gdata cannot be opened
// the returned store is degraded and the error is logged.
func OpenGdata(logger *log.Logger) *GdataKV {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("settings: persistent storage unavailable", "err", err)
		m = nil
	}
	return NewGdataKV(m, logger)
}

// NewGdataKV wraps an existing manager, which may be nil.
func NewGdataKV(m *gdata.Manager, logger *log.Logger) *GdataKV {
	if logger == nil {
		logger = log.Default()
	}
	return &GdataKV{m: m, logger: logger}
}

// Load returns the record for key.
func (s *GdataKV) Load(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m == nil || !s.m.ObjectPropExists(kvObject, key) {
		return "", false
	}
	data, err := s.m.LoadObjectProp(kvObject, key)
	if err != nil {
		s.logger.Debug("settings: load failed", "key", key, "err", err)
		return "", false
	}
	return string(data), true
}

// Save writes the record for key.
func (s *GdataKV) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m == nil {
		s.logger.Debug("settings: degraded mode, dropping write", "key", key)
		return nil
	}
	if err := s.m.SaveObjectProp(kvObject, key, []byte(value)); err != nil {
		return fmt.Errorf("settings: save %s: %w", key, err)
	}
	return nil
}

// MemKV is an in-memory KV. Setting FailSaves makes every Save fail, which
// exercises the ignore-on-failure paths.
type MemKV struct {
	mu        sync.Mutex
	data      map[string]string
	FailSaves bool
}

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string]string)}
}

// Load returns the record for key.
func (m *MemKV) Load(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Save writes the record for key.
func (m *MemKV) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return fmt.Errorf("settings: save %s: write refused", key)
	}
	m.data[key] = value
	return nil
}

// ParseScores reads a comma-separated score list. Entries that are not
// non-negative integers are skipped; the result is the first three valid
// values padded with zeros.
func ParseScores(csv string) [breakout.HighScoreSlots]int {
	var out [breakout.HighScoreSlots]int
	n := 0
	for _, part := range strings.Split(csv, ",") {
		if n == len(out) {
			break
		}
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			continue
		}
		out[n] = int(v)
		n++
	}
	return out
}

// FormatScores is the inverse of ParseScores.
func FormatScores(scores [breakout.HighScoreSlots]int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(max(s, 0))
	}
	return strings.Join(parts, ",")
}

// Volume defaults and step.
const (
	DefaultBGM = 0.5
	DefaultSFX = 0.7
	VolumeStep = 0.1
)

// AudioSettings holds the two volume channels, each in [0, 1].
type AudioSettings struct {
	BGM float64
	SFX float64
}

// DefaultAudio returns the default volumes.
func DefaultAudio() AudioSettings {
	return AudioSettings{BGM: DefaultBGM, SFX: DefaultSFX}
}

// ClampVolume restricts v to [0, 1]. NaN maps to 0.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return min(v, 1)
}

// StepUp raises v by one step, rounded to the step grid.
func StepUp(v float64) float64 {
	return ClampVolume(math.Round((v+VolumeStep)*10) / 10)
}

// StepDown lowers v by one step, rounded to the step grid.
func StepDown(v float64) float64 {
	return ClampVolume(math.Round((v-VolumeStep)*10) / 10)
}

// Percent returns v as a whole percentage.
func Percent(v float64) int {
	return int(math.Round(ClampVolume(v) * 100))
}

// ParseAudio reads "bgm,sfx". A missing or malformed field keeps its
// default.
func ParseAudio(csv string) AudioSettings {
	a := DefaultAudio()
	parts := strings.Split(csv, ",")
	if len(parts) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
			a.BGM = ClampVolume(v)
		}
	}
	if len(parts) > 1 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			a.SFX = ClampVolume(v)
		}
	}
	return a
}

// String formats a as "bgm,sfx".
func (a AudioSettings) String() string {
	return strconv.FormatFloat(ClampVolume(a.BGM), 'f', 2, 64) + "," +
		strconv.FormatFloat(ClampVolume(a.SFX), 'f', 2, 64)
}

// Store reads and writes the typed records on top of a KV. It satisfies
// breakout.ScoreStore.
type Store struct {
	kv     KV
	logger *log.Logger
}

var _ breakout.ScoreStore = (*Store)(nil)

// NewStore wraps kv.
func NewStore(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// LoadScores returns the persisted table or zeros.
func (s *Store) LoadScores() [breakout.HighScoreSlots]int {
	v, ok := s.kv.Load(KeyScores)
	if !ok {
		return [breakout.HighScoreSlots]int{}
	}
	return ParseScores(v)
}

// SaveScores persists the table. Failures are logged and otherwise ignored.
func (s *Store) SaveScores(scores [breakout.HighScoreSlots]int) {
	if err := s.kv.Save(KeyScores, FormatScores(scores)); err != nil {
		s.logger.Debug("high scores not saved", "err", err)
	}
}

// LoadAudio returns the persisted volumes or the defaults.
func (s *Store) LoadAudio() AudioSettings {
	v, ok := s.kv.Load(KeyAudio)
	if !ok {
		return DefaultAudio()
	}
	return ParseAudio(v)
}

// SaveAudio persists the volumes. Failures are logged and otherwise ignored.
func (s *Store) SaveAudio(a AudioSettings) {
	if err := s.kv.Save(KeyAudio, a.String()); err != nil {
		s.logger.Debug("audio settings not saved", "err", err)
	}
}
