package config

import (
	_ "embed"
)

//go:embed defaults/momorun.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. Difficulty progression is
// off so the base scroll speed and spawn interval apply exactly.
func Default() Config {
	return Config{
		World: WorldConfig{
			ScrollSpeed: 5,
			FloorWidth:  3,
			TileStart:   -13,
			TileEnd:     24,
			RecycleAt:   -13,
		},
		Obstacles: ObstaclesConfig{
			Enabled:       true,
			SpawnInterval: 1.0,
			SpawnX:        20,
			Weights: WeightsConfig{
				Rock:       0.5,
				CutTreeRow: 0.25,
				LogCluster: 0.25,
			},
		},
		Player: PlayerConfig{
			X:               -3,
			InitialLane:     1,
			GroundLevel:     3,
			JumpLevel:       4,
			CrouchLevel:     2,
			JumpDuration:    0.6,
			CrouchFrameTime: 0.08,
			CrouchFrames:    9,
		},
		Motion: MotionConfig{
			StillThreshold:   0.05,
			JumpThreshold:    0.25,
			CrouchThreshold:  0.25,
			LateralThreshold: 0.1,
			Debounce:         0.75,
			SampleRate:       60,
			ProcessNoise:     0.05,
			ObservationNoise: 0.5,
		},
		Transport: TransportConfig{
			Listen:    ":8765",
			Path:      "/ws",
			InboxSize: 64,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.4,
			},
		},
		Calories: CaloriesConfig{
			Default: 500,
			Step:    50,
			Min:     0,
			Max:     5000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
