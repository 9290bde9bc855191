package core

import "fmt"

// MinTickRate is the slowest supported simulation rate. Below it a single
// tick moves obstacles too far for the per-tick checks to stay meaningful.
const MinTickRate = 10

// RuntimeConfig contains configuration passed to the simulation host.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Validate checks the tick rate.
func (c RuntimeConfig) Validate() error {
	if c.TickRate < MinTickRate {
		return fmt.Errorf("tick rate %d below minimum %d", c.TickRate, MinTickRate)
	}
	return nil
}

// GameState represents the current state of a round.
type GameState struct {
	Score    int     // Whole tiles travelled
	Elapsed  float64 // Seconds played
	Cleared  int     // Obstacle spawns that passed the player
	Speed    float64 // Current scroll speed in tiles per second
	GameOver bool    // Whether the round has ended
	Paused   bool    // Whether the simulation is paused
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State    GameState
	Collided bool // A collision ended the round during this tick
}
