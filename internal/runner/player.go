package runner

import (
	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/iso"
)

// VerticalState is the player's vertical action.
type VerticalState int

const (
	Grounded VerticalState = iota
	Jumping
	Crouching
)

// String returns a human-readable name for the state.
func (v VerticalState) String() string {
	switch v {
	case Grounded:
		return "Grounded"
	case Jumping:
		return "Jumping"
	case Crouching:
		return "Crouching"
	default:
		return "Unknown"
	}
}

// verticalTransitions lists the legal vertical state changes. A jump or
// crouch must finish before another vertical action can start.
var verticalTransitions = map[VerticalState][]VerticalState{
	Grounded:  {Jumping, Crouching},
	Jumping:   {Grounded},
	Crouching: {Grounded},
}

func canChangeVertical(from, to VerticalState) bool {
	for _, s := range verticalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PlayerState is a snapshot of the player.
type PlayerState struct {
	Lane     int
	Vertical VerticalState
	Alive    bool
}

// Player sits at a fixed world x while the world scrolls past. Lane
// changes are immediate; jump and crouch revert to Grounded on a timer.
type Player struct {
	cfg     config.PlayerConfig
	maxLane int

	lane      int
	vertical  VerticalState
	remaining float64 // seconds left in the current vertical action
	alive     bool
}

// NewPlayer creates a grounded player in the initial lane.
func NewPlayer(cfg config.PlayerConfig, lanes int) *Player {
	p := &Player{cfg: cfg, maxLane: lanes - 1}
	p.Reset()
	return p
}

// Reset puts the player back in the initial lane, grounded and alive.
func (p *Player) Reset() {
	p.lane = p.cfg.InitialLane
	p.vertical = Grounded
	p.remaining = 0
	p.alive = true
}

// MoveLeft shifts one lane left. Lane indices grow to the left.
// A no-op at the last lane.
func (p *Player) MoveLeft() bool {
	if p.lane >= p.maxLane {
		return false
	}
	p.lane++
	return true
}

// MoveRight shifts one lane right. A no-op at lane 0.
func (p *Player) MoveRight() bool {
	if p.lane <= 0 {
		return false
	}
	p.lane--
	return true
}

// Jump starts a jump. Ignored while another vertical action runs.
func (p *Player) Jump() bool {
	return p.startVertical(Jumping, p.cfg.JumpDuration)
}

// Crouch starts a crouch. Ignored while another vertical action runs.
func (p *Player) Crouch() bool {
	return p.startVertical(Crouching, p.cfg.CrouchDuration())
}

func (p *Player) startVertical(to VerticalState, duration float64) bool {
	if !canChangeVertical(p.vertical, to) {
		return false
	}
	p.vertical = to
	p.remaining = duration
	return true
}

// Update counts down the current vertical action.
func (p *Player) Update(dt float64) {
	if p.vertical == Grounded {
		return
	}
	p.remaining -= dt
	if p.remaining <= 0 && canChangeVertical(p.vertical, Grounded) {
		p.vertical = Grounded
		p.remaining = 0
	}
}

// Kill marks the player as hit.
func (p *Player) Kill() {
	p.alive = false
}

// Level returns the z level the player currently occupies.
func (p *Player) Level() int {
	switch p.vertical {
	case Jumping:
		return p.cfg.JumpLevel
	case Crouching:
		return p.cfg.CrouchLevel
	default:
		return p.cfg.GroundLevel
	}
}

// X returns the player's fixed world x.
func (p *Player) X() int {
	return p.cfg.X
}

// Position returns the player's grid position.
func (p *Player) Position() iso.WorldVector {
	return iso.Vec(p.cfg.X, p.lane, p.Level())
}

// State returns a snapshot of the player.
func (p *Player) State() PlayerState {
	return PlayerState{Lane: p.lane, Vertical: p.vertical, Alive: p.alive}
}

// Remaining returns the seconds left in the current vertical action.
func (p *Player) Remaining() float64 {
	return p.remaining
}
