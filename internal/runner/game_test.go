package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/gesture"
)

const tick = 1.0 / 60

func newGame(t *testing.T, mutate func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func noSpawns(c *config.Config) { c.Obstacles.Enabled = false }

// place puts an obstacle directly into the active set.
func place(g *Game, kind ObstacleKind, lane int, offset float64) {
	g.spawner.obstacles = append(g.spawner.obstacles, Obstacle{
		SpawnID: 99, Kind: kind, Lane: lane, Level: 3, Offset: offset,
	})
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.World.ScrollSpeed = -1
	if _, err := New(cfg, 1); err == nil {
		t.Error("New() error = nil for negative scroll speed")
	}
}

func TestCollisionExactness(t *testing.T) {
	tests := []struct {
		name     string
		kind     ObstacleKind
		lane     int
		gestures []gesture.Gesture
		collide  bool
	}{
		{"same lane grounded", Rock, 1, nil, true},
		{"jump clears", Rock, 1, []gesture.Gesture{gesture.Jump}, false},
		{"crouch changes level", Rock, 1, []gesture.Gesture{gesture.Crouch}, false},
		{"other lane", Rock, 0, nil, false},
		{"dodge left", Rock, 1, []gesture.Gesture{gesture.Left}, false},
		{"log cluster hits any lane", LogCluster, AllLanes, []gesture.Gesture{gesture.Left}, true},
		{"log cluster jumped", LogCluster, AllLanes, []gesture.Gesture{gesture.Jump}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, noSpawns)
			// One tick at speed 5 moves 1/12: -2.45 arrives at about -2.53
			place(g, tt.kind, tt.lane, -2.45)
			for _, gs := range tt.gestures {
				g.Inbox().Push(gs)
			}

			res := g.Step(tick)
			if res.Collided != tt.collide {
				t.Errorf("Collided = %v, expected %v", res.Collided, tt.collide)
			}
			if (g.Round() == GameOver) != tt.collide {
				t.Errorf("Round() = %v", g.Round())
			}
			if res.State.GameOver != tt.collide {
				t.Errorf("State.GameOver = %v, expected %v", res.State.GameOver, tt.collide)
			}
			if g.Player().Alive == tt.collide {
				t.Errorf("Player().Alive = %v", g.Player().Alive)
			}
		})
	}
}

func TestGameOverStopsSimulation(t *testing.T) {
	g := newGame(t, nil)
	place(g, Rock, 1, -2.45)
	g.Step(tick)
	if g.Round() != GameOver {
		t.Fatal("expected GameOver")
	}

	tiles := append([]Tile(nil), g.Tiles()...)
	elapsed := g.Elapsed()
	timer := g.SpawnTimer()
	for i := 0; i < 120; i++ {
		g.Step(tick)
	}
	if g.Elapsed() != elapsed || g.SpawnTimer() != timer {
		t.Error("simulation advanced during GameOver")
	}
	for i, tile := range g.Tiles() {
		if tile != tiles[i] {
			t.Fatal("tiles moved during GameOver")
		}
	}
}

func TestGesturesDroppedDuringGameOver(t *testing.T) {
	g := newGame(t, noSpawns)
	place(g, Rock, 1, -2.45)
	g.Step(tick)

	g.Inbox().Push(gesture.Left)
	g.Inbox().Push(gesture.Jump)
	g.Step(tick)

	if p := g.Player(); p.Lane != 1 || p.Vertical != Grounded {
		t.Errorf("gestures applied during GameOver: %+v", p)
	}
	if g.Inbox().Len() != 0 {
		t.Errorf("inbox still holds %d gestures", g.Inbox().Len())
	}
}

func TestRestartResetsState(t *testing.T) {
	g := newGame(t, nil)
	for i := 0; i < 200; i++ {
		g.Step(tick)
	}
	g.Inbox().Push(gesture.Left)
	g.Step(tick)
	place(g, Rock, 2, -2.45)
	g.Step(tick)
	if g.Round() != GameOver {
		t.Fatal("expected GameOver")
	}

	// Restart via gesture; the stale jump behind it must not fire.
	g.Inbox().Push(gesture.Restart)
	g.Inbox().Push(gesture.Jump)
	g.Step(tick)

	if g.Round() != Running {
		t.Errorf("Round() = %v, expected Running", g.Round())
	}
	if len(g.Obstacles()) != 0 {
		t.Errorf("%d obstacles after restart", len(g.Obstacles()))
	}
	if g.SpawnTimer() != 0 {
		t.Errorf("SpawnTimer() = %v, expected 0", g.SpawnTimer())
	}
	if p := g.Player(); p != (PlayerState{Lane: 1, Vertical: Grounded, Alive: true}) {
		t.Errorf("Player() = %+v, expected initial state", p)
	}
	if st := g.State(); st.Score != 0 || st.Elapsed != 0 || st.Cleared != 0 {
		t.Errorf("State() = %+v, expected zeroed counters", st)
	}
}

func TestRestartFlushesInbox(t *testing.T) {
	g := newGame(t, noSpawns)
	g.Inbox().Push(gesture.Jump)
	g.Inbox().Push(gesture.Left)
	g.Restart()
	g.Step(tick)
	if p := g.Player(); p.Lane != 1 || p.Vertical != Grounded {
		t.Errorf("stale gestures survived Restart(): %+v", p)
	}
}

func TestGestureOrderWithinTick(t *testing.T) {
	g := newGame(t, noSpawns)
	for _, gs := range []gesture.Gesture{gesture.Left, gesture.Left, gesture.Right, gesture.Crouch, gesture.Jump} {
		g.Inbox().Push(gs)
	}
	g.Step(tick)
	p := g.Player()
	if p.Lane != 1 {
		t.Errorf("Lane = %d, expected 1 (left capped at 2, then right)", p.Lane)
	}
	if p.Vertical != Crouching {
		t.Errorf("Vertical = %v, expected Crouching (jump ignored mid-crouch)", p.Vertical)
	}
}

func TestEndToEndCollision(t *testing.T) {
	// Only tree rows spawn, so the first spawn always blocks lane 1.
	g := newGame(t, func(c *config.Config) {
		c.Obstacles.Weights = config.WeightsConfig{CutTreeRow: 1}
	})

	spawnedAt := -1.0
	for i := 0; i < 60*10; i++ {
		g.Step(tick)
		if spawnedAt < 0 && len(g.Obstacles()) > 0 {
			spawnedAt = g.Elapsed()
			if spawnedAt < 1.0-tick || spawnedAt > 1.0+tick {
				t.Errorf("first spawn at %.3fs, expected 1.0s", spawnedAt)
			}
		}
		if g.Round() == GameOver {
			break
		}
	}

	if g.Round() != GameOver {
		t.Fatal("no collision within 10 seconds")
	}
	// math.Round puts x = -2.5 in the player's column, so the hit lands
	// when the row reaches -2.5: 22.5 tiles at 5 tiles/s is 4.5s, one tick
	// before -2.6 (4.6s).
	travel := g.Elapsed() - spawnedAt
	if travel < 4.5-tick || travel > 4.6+tick {
		t.Errorf("collision %.3fs after spawn, expected 4.5-4.6s", travel)
	}
	if total := g.Elapsed(); total < 5.5-tick || total > 5.6+2*tick {
		t.Errorf("collision at t=%.3fs, expected about 5.6s", total)
	}
}

func TestJumpOverRow(t *testing.T) {
	g := newGame(t, func(c *config.Config) {
		c.Obstacles.Weights = config.WeightsConfig{CutTreeRow: 1}
	})

	jumped := map[uint64]bool{}
	for i := 0; i < 60*9; i++ {
		for _, o := range g.Obstacles() {
			if !jumped[o.SpawnID] && o.Offset < -1.5 && o.Offset > -2.5 {
				g.Inbox().Push(gesture.Jump)
				jumped[o.SpawnID] = true
			}
		}
		g.Step(tick)
		if g.Round() == GameOver {
			t.Fatalf("collided at t=%.3f despite jumping", g.Elapsed())
		}
	}
	if g.State().Cleared == 0 {
		t.Error("State().Cleared = 0, expected the jumped rows to count")
	}
}

func TestScoreCountsTiles(t *testing.T) {
	g := newGame(t, noSpawns)
	for i := 0; i < 120; i++ {
		g.Step(tick)
	}
	// 2 seconds at 5 tiles/s
	if s := g.Score(); s < 9 || s > 10 {
		t.Errorf("Score() = %d, expected about 10", s)
	}
}

func TestPauseDropsLocomotion(t *testing.T) {
	g := newGame(t, noSpawns)
	g.SetPaused(true)
	g.Inbox().Push(gesture.Left)
	g.Inbox().Push(gesture.Jump)
	res := g.Step(tick)
	if !res.State.Paused || g.Elapsed() != 0 {
		t.Error("paused game advanced")
	}
	g.SetPaused(false)
	g.Step(tick)
	if p := g.Player(); p.Lane != 1 || p.Vertical != Grounded {
		t.Errorf("Player() = %+v, expected gestures sent while paused to be dropped", p)
	}
}

func TestRestartWhilePaused(t *testing.T) {
	g := newGame(t, noSpawns)
	for i := 0; i < 30; i++ {
		g.Step(tick)
	}
	g.SetPaused(true)
	g.Inbox().Push(gesture.Restart)
	res := g.Step(tick)
	if res.State.Paused {
		t.Error("Restart while paused should resume")
	}
	if g.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0 after restart", g.Elapsed())
	}
	g.Step(tick)
	if g.Elapsed() == 0 {
		t.Error("restarted game did not advance")
	}
}

func TestLargeStepCannotSkipPlayer(t *testing.T) {
	tests := []struct {
		name    string
		lane    int
		start   float64
		dt      float64
		collide bool
	}{
		// -2.3 to -3.55 jumps over the -3 column in one tick
		{"skips column", 1, -2.3, 0.25, true},
		{"stops short of column", 1, -1.0, 0.25, false},
		{"other lane", 0, -2.3, 0.25, false},
		{"already behind", 1, -3.6, 0.25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, noSpawns)
			place(g, Rock, tt.lane, tt.start)
			res := g.Step(tt.dt)
			if res.Collided != tt.collide {
				t.Errorf("Step(%v) from %v: Collided = %v, expected %v (offset now %v)",
					tt.dt, tt.start, res.Collided, tt.collide, g.Obstacles()[0].Offset)
			}
		})
	}
}

func TestLargeStepJumpStillClears(t *testing.T) {
	g := newGame(t, noSpawns)
	place(g, Rock, 1, -2.3)
	g.Inbox().Push(gesture.Jump)
	if res := g.Step(0.25); res.Collided {
		t.Error("jumping player hit a rock crossing its column")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, noSpawns)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "@@") {
		t.Error("player not drawn")
	}
	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD not drawn")
	}

	place(g, Rock, 1, -2.45)
	g.Step(tick)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over banner not drawn")
	}
}
