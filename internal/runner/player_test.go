package runner

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/momorun/internal/config"
)

func newPlayer() *Player {
	cfg := config.Default()
	return NewPlayer(cfg.Player, cfg.World.FloorWidth)
}

func TestPlayerInitialState(t *testing.T) {
	p := newPlayer()
	st := p.State()
	if st.Lane != 1 || st.Vertical != Grounded || !st.Alive {
		t.Errorf("State() = %+v, expected lane 1, grounded, alive", st)
	}
	if p.Level() != 3 || p.X() != -3 {
		t.Errorf("Level() = %d, X() = %d; expected 3, -3", p.Level(), p.X())
	}
}

func TestPlayerLaneMapping(t *testing.T) {
	p := newPlayer()

	if !p.MoveLeft() || p.State().Lane != 2 {
		t.Errorf("MoveLeft() from lane 1 -> lane %d, expected 2", p.State().Lane)
	}
	if p.MoveLeft() || p.State().Lane != 2 {
		t.Errorf("MoveLeft() at max lane should be a no-op, lane %d", p.State().Lane)
	}
	p.MoveRight()
	p.MoveRight()
	if p.State().Lane != 0 {
		t.Errorf("lane after two MoveRight() = %d, expected 0", p.State().Lane)
	}
	if p.MoveRight() || p.State().Lane != 0 {
		t.Errorf("MoveRight() at lane 0 should be a no-op, lane %d", p.State().Lane)
	}
}

func TestPlayerLaneBounds(t *testing.T) {
	p := newPlayer()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 5000; i++ {
		before := p.State().Lane
		var moved bool
		if rng.Intn(2) == 0 {
			moved = p.MoveLeft()
		} else {
			moved = p.MoveRight()
		}
		lane := p.State().Lane
		if lane < 0 || lane > 2 {
			t.Fatalf("lane %d out of bounds after %d moves", lane, i)
		}
		if !moved && lane != before {
			t.Fatalf("no-op move changed lane %d -> %d", before, lane)
		}
	}
}

// holdFor steps the player at 60 Hz and returns how long the current
// vertical action lasted.
func holdFor(p *Player) float64 {
	const dt = 1.0 / 60
	elapsed := 0.0
	for p.State().Vertical != Grounded {
		p.Update(dt)
		elapsed += dt
		if elapsed > 5 {
			break
		}
	}
	return elapsed
}

func TestPlayerJump(t *testing.T) {
	p := newPlayer()
	if !p.Jump() {
		t.Fatal("Jump() = false from Grounded")
	}
	if p.State().Vertical != Jumping || p.Level() != 4 {
		t.Errorf("after Jump(): %v at level %d, expected Jumping at 4", p.State().Vertical, p.Level())
	}
	if d := holdFor(p); math.Abs(d-0.6) > 1.0/60+1e-9 {
		t.Errorf("jump lasted %.3fs, expected 0.6s", d)
	}
	if p.Level() != 3 {
		t.Errorf("Level() after jump = %d, expected 3", p.Level())
	}
}

func TestPlayerCrouch(t *testing.T) {
	p := newPlayer()
	if !p.Crouch() {
		t.Fatal("Crouch() = false from Grounded")
	}
	if p.Level() != 2 {
		t.Errorf("Level() while crouching = %d, expected 2", p.Level())
	}
	if d := holdFor(p); math.Abs(d-0.72) > 1.0/60+1e-9 {
		t.Errorf("crouch lasted %.3fs, expected 0.72s", d)
	}
}

func TestPlayerVerticalNotInterruptible(t *testing.T) {
	p := newPlayer()
	p.Jump()
	p.Update(0.1)

	if p.Crouch() {
		t.Error("Crouch() during a jump should be ignored")
	}
	if p.Jump() {
		t.Error("Jump() during a jump should be ignored")
	}
	if p.State().Vertical != Jumping {
		t.Errorf("Vertical = %v, expected Jumping", p.State().Vertical)
	}
	if math.Abs(p.Remaining()-0.5) > 1e-9 {
		t.Errorf("Remaining() = %v, expected the jump timer untouched at 0.5", p.Remaining())
	}

	// Lane changes still work mid-air
	if !p.MoveLeft() {
		t.Error("MoveLeft() during a jump should work")
	}
}

func TestPlayerReset(t *testing.T) {
	p := newPlayer()
	p.MoveLeft()
	p.Crouch()
	p.Kill()
	p.Reset()
	if st := p.State(); st != (PlayerState{Lane: 1, Vertical: Grounded, Alive: true}) {
		t.Errorf("after Reset() State() = %+v", st)
	}
}
