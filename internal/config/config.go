// Package config provides YAML-based configuration loading for the breakout
// simulation and its difficulty presets.
package config

import "fmt"

// BreakoutConfig contains all tunables of the breakout simulation.
// Distances are world units (the field is centered on the origin, +Y up)
// and durations are seconds.
type BreakoutConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Ball      BallConfig      `yaml:"ball"`
	Blocks    BlocksConfig    `yaml:"blocks"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	PowerUps  PowerUpsConfig  `yaml:"powerups"`
	Countdown CountdownConfig `yaml:"countdown"`
}

// FieldConfig defines the play field.
type FieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Y      float64 `yaml:"y"`
}

// BallConfig defines the ball.
type BallConfig struct {
	Size                  float64 `yaml:"size"`
	Speed                 float64 `yaml:"speed"`
	SpeedIncreasePerLevel float64 `yaml:"speed_increase_per_level"`
	SteeringFactor        float64 `yaml:"steering_factor"`
}

// BlocksConfig defines the block grid.
type BlocksConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Gap             float64 `yaml:"gap"`
	StartY          float64 `yaml:"start_y"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
}

// ScoringConfig defines points and the combo window.
type ScoringConfig struct {
	BasePoints   int     `yaml:"base_points"`
	DurableBonus int     `yaml:"durable_bonus"`
	ComboWindow  float64 `yaml:"combo_window"`
}

// PowerUpsConfig defines pickup spawning and effect tuning.
type PowerUpsConfig struct {
	SpawnChance        float64 `yaml:"spawn_chance"`
	FallSpeed          float64 `yaml:"fall_speed"`
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	WidePaddleDuration float64 `yaml:"wide_paddle_duration"`
	WidePaddleFactor   float64 `yaml:"wide_paddle_multiplier"`
	SlowBallDuration   float64 `yaml:"slow_ball_duration"`
	SlowBallFactor     float64 `yaml:"slow_ball_multiplier"`
	FireBallDuration   float64 `yaml:"fire_ball_duration"`
	MultiBallSpread    float64 `yaml:"multi_ball_spread"` // radians
}

// CountdownConfig defines the pre-level countdown.
type CountdownConfig struct {
	Step float64 `yaml:"step"`
	Go   float64 `yaml:"go"`
}

// Validate reports the first setting that would make the simulation
// degenerate.
func (c BreakoutConfig) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"ball.size", c.Ball.Size},
		{"ball.speed", c.Ball.Speed},
		{"blocks.width", c.Blocks.Width},
		{"blocks.height", c.Blocks.Height},
		{"scoring.combo_window", c.Scoring.ComboWindow},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", chk.name, chk.value)
		}
	}
	if c.PowerUps.SpawnChance < 0 || c.PowerUps.SpawnChance > 1 {
		return fmt.Errorf("config: powerups.spawn_chance must be within [0,1], got %v", c.PowerUps.SpawnChance)
	}
	if c.PowerUps.SlowBallFactor <= 0 || c.PowerUps.SlowBallFactor > 1 {
		return fmt.Errorf("config: powerups.slow_ball_multiplier must be within (0,1], got %v", c.PowerUps.SlowBallFactor)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}
