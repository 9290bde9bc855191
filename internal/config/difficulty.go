package config

import (
	"fmt"
	"math"
)

// Lower bound for the spawn interval at any difficulty.
const minSpawnInterval = 0.4

// DifficultyManager calculates scroll speed and spawn interval from the
// time played in the current round.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == "time"
}

// Level returns the difficulty level (0.0 to 1.0) after elapsed seconds.
// With progression disabled the level is 0 and the base values apply.
func (d *DifficultyManager) Level(elapsed float64) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the scroll speed after elapsed seconds.
func (d *DifficultyManager) Speed(baseSpeed, elapsed float64) float64 {
	level := d.Level(elapsed)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval returns the obstacle spawn interval after elapsed seconds.
func (d *DifficultyManager) SpawnInterval(baseInterval, elapsed float64) float64 {
	if !d.IsEnabled() {
		return baseInterval
	}
	// Interval shrinks as difficulty increases
	level := d.Level(elapsed)
	result := baseInterval * (1.0 - level*d.cfg.Scaling.IntervalReduction)
	return math.Max(result, minSpawnInterval)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string keeps the
// configured difficulty and is returned as-is.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Progression.Type = "time"
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.SpawnInterval = 1.2
		cfg.Obstacles.Weights.LogCluster = 0.15
	case DifficultyHard:
		cfg.World.ScrollSpeed = 6
		cfg.Obstacles.Weights.Rock = 0.4
		cfg.Obstacles.Weights.LogCluster = 0.35
	}
}
