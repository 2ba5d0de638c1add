package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hardcoded breakout configuration. It is
// the last fallback when even the embedded YAML cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{
			Width:         800,
			Height:        800,
			WallThickness: 10,
		},
		Paddle: PaddleConfig{
			Width:  100,
			Height: 20,
			Speed:  500,
			Y:      -350,
		},
		Ball: BallConfig{
			Size:                  15,
			Speed:                 400,
			SpeedIncreasePerLevel: 0.1,
			SteeringFactor:        0.8,
		},
		Blocks: BlocksConfig{
			Width:           70,
			Height:          25,
			Gap:             5,
			StartY:          280,
			ExplosionRadius: 85,
		},
		Scoring: ScoringConfig{
			BasePoints:   10,
			DurableBonus: 15,
			ComboWindow:  1.5,
		},
		PowerUps: PowerUpsConfig{
			SpawnChance:        0.15,
			FallSpeed:          150,
			Width:              30,
			Height:             15,
			WidePaddleDuration: 10,
			WidePaddleFactor:   1.5,
			SlowBallDuration:   8,
			SlowBallFactor:     0.6,
			FireBallDuration:   6,
			MultiBallSpread:    0.52,
		},
		Countdown: CountdownConfig{
			Step: 0.8,
			Go:   0.5,
		},
	}
}
