package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// EventKind identifies a frame-local notification for presentation
// collaborators (audio, effects, HUD).
type EventKind int

const (
	EventPaddleBounce EventKind = iota
	EventWallBounce             // Also emitted for steel blocks
	EventBlockHit               // Durable block lost a hit
	EventBlockDestroyed
	EventExplosion
	EventPowerUpCollected
	EventGameOver
	EventLevelClear
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPaddleBounce:
		return "PaddleBounce"
	case EventWallBounce:
		return "WallBounce"
	case EventBlockHit:
		return "BlockHit"
	case EventBlockDestroyed:
		return "BlockDestroyed"
	case EventExplosion:
		return "Explosion"
	case EventPowerUpCollected:
		return "PowerUpCollected"
	case EventGameOver:
		return "GameOver"
	case EventLevelClear:
		return "LevelClear"
	default:
		return "Unknown"
	}
}

// Event is one notification produced during a single Step. Events are not
// queued across frames.
type Event struct {
	Kind    EventKind
	Pos     core.Vec2
	Block   BlockType   // Block events
	Points  int         // BlockDestroyed: points awarded
	Combo   int         // BlockDestroyed: combo count after the hit
	PowerUp PowerUpKind // PowerUpCollected
}

// Has reports whether events contains at least one event of kind k.
func Has(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Count returns how many events of kind k are in events.
func Count(events []Event, k EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
