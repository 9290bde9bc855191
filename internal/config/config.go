// Package config provides YAML-based configuration loading and
// difficulty management for the runner and the motion controller.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/momorun/internal/motion"
)

// Config contains every tunable of the runner and the controller.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Player     PlayerConfig     `yaml:"player"`
	Motion     MotionConfig     `yaml:"motion"`
	Transport  TransportConfig  `yaml:"transport"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Calories   CaloriesConfig   `yaml:"calories"`
}

// WorldConfig defines the scrolling floor.
type WorldConfig struct {
	ScrollSpeed float64 `yaml:"scroll_speed"` // tiles per second
	FloorWidth  int     `yaml:"floor_width"`  // number of lanes
	TileStart   int     `yaml:"tile_start"`   // world x of the first tile column
	TileEnd     int     `yaml:"tile_end"`     // world x of the last tile column
	RecycleAt   float64 `yaml:"recycle_at"`   // offsets below this are recycled or pruned
}

// ObstaclesConfig defines obstacle spawning.
type ObstaclesConfig struct {
	Enabled       bool          `yaml:"enabled"`
	SpawnInterval float64       `yaml:"spawn_interval"` // seconds
	SpawnX        float64       `yaml:"spawn_x"`
	Weights       WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds the relative spawn weight of each archetype.
type WeightsConfig struct {
	Rock       float64 `yaml:"rock"`
	CutTreeRow float64 `yaml:"cut_tree_row"`
	LogCluster float64 `yaml:"log_cluster"`
}

// PlayerConfig defines the player's position and vertical actions.
type PlayerConfig struct {
	X               int     `yaml:"x"`
	InitialLane     int     `yaml:"initial_lane"`
	GroundLevel     int     `yaml:"ground_level"`
	JumpLevel       int     `yaml:"jump_level"`
	CrouchLevel     int     `yaml:"crouch_level"`
	JumpDuration    float64 `yaml:"jump_duration"`     // seconds, up and down phases together
	CrouchFrameTime float64 `yaml:"crouch_frame_time"` // seconds per crouch animation frame
	CrouchFrames    int     `yaml:"crouch_frames"`
}

// CrouchDuration returns how long a crouch lasts.
func (p PlayerConfig) CrouchDuration() float64 {
	return p.CrouchFrameTime * float64(p.CrouchFrames)
}

// MotionConfig defines the controller's classifier.
type MotionConfig struct {
	StillThreshold   float64 `yaml:"still_threshold"`
	JumpThreshold    float64 `yaml:"jump_threshold"`
	CrouchThreshold  float64 `yaml:"crouch_threshold"`
	LateralThreshold float64 `yaml:"lateral_threshold"`
	Debounce         float64 `yaml:"debounce"`    // seconds
	SampleRate       float64 `yaml:"sample_rate"` // Hz
	ProcessNoise     float64 `yaml:"process_noise"`
	ObservationNoise float64 `yaml:"observation_noise"`
}

// Classifier converts the section to the classifier's config.
func (m MotionConfig) Classifier() motion.Config {
	return motion.Config{
		StillThreshold:   m.StillThreshold,
		JumpThreshold:    m.JumpThreshold,
		CrouchThreshold:  m.CrouchThreshold,
		LateralThreshold: m.LateralThreshold,
		Debounce:         m.Debounce,
		SampleRate:       m.SampleRate,
		ProcessNoise:     m.ProcessNoise,
		ObservationNoise: m.ObservationNoise,
	}
}

// TransportConfig defines the controller link.
type TransportConfig struct {
	Listen    string `yaml:"listen"`     // runner websocket address
	Path      string `yaml:"path"`       // websocket endpoint path
	InboxSize int    `yaml:"inbox_size"` // gestures buffered between ticks
}

// CaloriesConfig defines the calorie goal picker.
type CaloriesConfig struct {
	Default int `yaml:"default"`
	Step    int `yaml:"step"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "time" or "none"
	MaxAt float64 `yaml:"max_at"` // seconds of play at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to scroll speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the spawn interval removed at max difficulty
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.World.ScrollSpeed <= 0 {
		fail("world.scroll_speed must be positive, got %v", c.World.ScrollSpeed)
	}
	if c.World.FloorWidth < 1 {
		fail("world.floor_width must be at least 1, got %d", c.World.FloorWidth)
	}
	if c.World.TileEnd <= c.World.TileStart {
		fail("world.tile_end (%d) must be after tile_start (%d)", c.World.TileEnd, c.World.TileStart)
	}
	if c.World.RecycleAt > float64(c.World.TileStart) {
		fail("world.recycle_at (%v) must not be ahead of tile_start (%d)", c.World.RecycleAt, c.World.TileStart)
	}

	if c.Obstacles.SpawnInterval <= 0 {
		fail("obstacles.spawn_interval must be positive, got %v", c.Obstacles.SpawnInterval)
	}
	if c.Obstacles.SpawnX <= c.World.RecycleAt {
		fail("obstacles.spawn_x (%v) must be ahead of world.recycle_at (%v)", c.Obstacles.SpawnX, c.World.RecycleAt)
	}
	w := c.Obstacles.Weights
	if w.Rock < 0 || w.CutTreeRow < 0 || w.LogCluster < 0 || w.Rock+w.CutTreeRow+w.LogCluster <= 0 {
		fail("obstacles.weights must be non-negative with a positive sum")
	}

	if c.Player.InitialLane < 0 || c.Player.InitialLane >= c.World.FloorWidth {
		fail("player.initial_lane %d outside [0, %d]", c.Player.InitialLane, c.World.FloorWidth-1)
	}
	if c.Player.JumpDuration <= 0 {
		fail("player.jump_duration must be positive, got %v", c.Player.JumpDuration)
	}
	if c.Player.CrouchDuration() <= 0 {
		fail("player.crouch_frame_time and crouch_frames must be positive")
	}
	if c.Player.JumpLevel == c.Player.GroundLevel || c.Player.CrouchLevel == c.Player.GroundLevel {
		fail("player jump and crouch levels must differ from ground level %d", c.Player.GroundLevel)
	}

	if err := c.Motion.Classifier().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: motion: %w", ErrInvalid, err))
	}
	if c.Motion.ProcessNoise <= 0 || c.Motion.ObservationNoise <= 0 {
		fail("motion noise covariances must be positive")
	}

	if c.Transport.InboxSize < 1 {
		fail("transport.inbox_size must be at least 1, got %d", c.Transport.InboxSize)
	}

	cal := c.Calories
	if cal.Step <= 0 || cal.Min < 0 || cal.Max < cal.Min || cal.Default < cal.Min || cal.Default > cal.Max {
		fail("calories must satisfy 0 <= min <= default <= max and step > 0")
	}

	switch c.Difficulty.Progression.Type {
	case "", "none", "time":
	default:
		fail("difficulty.progression.type %q must be time or none", c.Difficulty.Progression.Type)
	}

	return errors.Join(errs...)
}
