// Package runner implements the isometric endless-runner simulation: a
// scrolling tile floor, timed obstacle spawns, a three-lane player driven
// by controller gestures and the collision check that ends a round.
//
// The simulation is single-threaded. Gestures arrive from other goroutines
// through the game's Inbox and are applied at the start of the next Step.
package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/gesture"
)

// RoundState is the lifecycle of one round.
type RoundState int

const (
	Running RoundState = iota
	GameOver
)

// String returns a human-readable name for the state.
func (r RoundState) String() string {
	switch r {
	case Running:
		return "Running"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// roundTransitions lists the legal round state changes.
var roundTransitions = map[RoundState][]RoundState{
	Running:  {GameOver, Running},
	GameOver: {Running},
}

func canChangeRound(from, to RoundState) bool {
	for _, s := range roundTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Game is one runner simulation instance.
type Game struct {
	cfg        config.Config
	difficulty *config.DifficultyManager

	inbox    *gesture.Inbox
	scroller *Scroller
	spawner  *Spawner
	player   *Player

	round     RoundState
	paused    bool
	elapsed   float64 // seconds of play in this round
	travelled float64 // world units scrolled in this round
	cleared   int     // obstacle spawns that passed the player
	speed     float64

	pending []gesture.Gesture
}

// New creates a running game. The configuration is validated first.
func New(cfg config.Config, seed int64) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		inbox:      gesture.NewInbox(cfg.Transport.InboxSize),
		scroller:   NewScroller(cfg.World),
		spawner:    NewSpawner(cfg.Obstacles, cfg.World, cfg.Player.GroundLevel, seed),
		player:     NewPlayer(cfg.Player, cfg.World.FloorWidth),
		speed:      cfg.World.ScrollSpeed,
		pending:    make([]gesture.Gesture, 0, 8),
	}
	return g, nil
}

// Inbox returns the queue gestures are pushed into.
func (g *Game) Inbox() *gesture.Inbox {
	return g.inbox
}

// Step advances the simulation by dt seconds. Queued gestures are applied
// first; then, while the round is running, the player timers, the floor,
// the obstacles and the collision check run in that order.
func (g *Game) Step(dt float64) core.StepResult {
	if restarted := g.applyGestures(); restarted {
		return core.StepResult{State: g.State()}
	}

	if g.paused || g.round != Running {
		return core.StepResult{State: g.State()}
	}

	g.player.Update(dt)

	g.speed = g.difficulty.Speed(g.cfg.World.ScrollSpeed, g.elapsed)
	interval := g.difficulty.SpawnInterval(g.cfg.Obstacles.SpawnInterval, g.elapsed)

	g.scroller.Advance(dt, g.speed)
	g.cleared += g.spawner.Update(dt, g.speed, interval)
	g.travelled += g.speed * dt
	g.elapsed += dt

	collided := g.checkCollision()
	if collided {
		g.setRound(GameOver)
		g.player.Kill()
	}

	return core.StepResult{State: g.State(), Collided: collided}
}

// applyGestures drains the inbox and applies each gesture in arrival
// order. While paused or during GameOver everything but Restart is
// dropped. A Restart discards whatever was queued behind it and consumes
// the tick.
func (g *Game) applyGestures() (restarted bool) {
	g.pending = g.inbox.Drain(g.pending[:0])
	for _, gs := range g.pending {
		if gs == gesture.Restart {
			g.Restart()
			return true
		}
		if g.paused || g.round != Running {
			continue
		}
		switch gs {
		case gesture.Left:
			g.player.MoveLeft()
		case gesture.Right:
			g.player.MoveRight()
		case gesture.Jump:
			g.player.Jump()
		case gesture.Crouch:
			g.player.Crouch()
		}
	}
	return false
}

// checkCollision reports whether any obstacle shares the player's lane
// and level and either sits in the player's column or moved across it
// during this tick.
func (g *Game) checkCollision() bool {
	x := g.player.X()
	lane := g.player.State().Lane
	level := g.player.Level()
	for _, o := range g.spawner.Obstacles() {
		if (o.WorldX() == x || o.Crossed(x)) && o.Blocks(lane) && o.Level == level {
			return true
		}
	}
	return false
}

func (g *Game) setRound(to RoundState) {
	if canChangeRound(g.round, to) {
		g.round = to
	}
}

// Restart resets the floor, clears obstacles and the spawn timer, puts
// the player back in the initial lane and discards queued gestures.
func (g *Game) Restart() {
	g.inbox.Flush()
	g.scroller.Reset()
	g.spawner.Reset()
	g.player.Reset()
	g.elapsed = 0
	g.travelled = 0
	g.cleared = 0
	g.speed = g.cfg.World.ScrollSpeed
	g.paused = false
	g.setRound(Running)
}

// SetPaused pauses or resumes the simulation. Locomotion sent while
// paused is dropped; a Restart still restarts and resumes.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// SetObstaclesEnabled turns obstacle spawning on or off.
func (g *Game) SetObstaclesEnabled(enabled bool) {
	g.spawner.SetEnabled(enabled)
}

// Round returns the round state.
func (g *Game) Round() RoundState { return g.round }

// Player returns a snapshot of the player.
func (g *Game) Player() PlayerState { return g.player.State() }

// PlayerLevel returns the z level the player occupies.
func (g *Game) PlayerLevel() int { return g.player.Level() }

// Tiles returns the floor tiles.
func (g *Game) Tiles() []Tile { return g.scroller.Tiles() }

// Obstacles returns the active obstacles.
func (g *Game) Obstacles() []Obstacle { return g.spawner.Obstacles() }

// SpawnTimer returns the time accumulated towards the next spawn.
func (g *Game) SpawnTimer() float64 { return g.spawner.Timer() }

// Elapsed returns the seconds played in this round.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Score returns the whole tiles travelled in this round.
func (g *Game) Score() int { return int(math.Floor(g.travelled)) }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		Elapsed:  g.elapsed,
		Cleared:  g.cleared,
		Speed:    g.speed,
		GameOver: g.round == GameOver,
		Paused:   g.paused,
	}
}
