package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/iso"
)

// ObstacleKind is the archetype of an obstacle.
type ObstacleKind int

const (
	Rock ObstacleKind = iota
	CutTree
	LogCluster
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case Rock:
		return "Rock"
	case CutTree:
		return "CutTree"
	case LogCluster:
		return "LogCluster"
	default:
		return "Unknown"
	}
}

// AllLanes marks an obstacle that blocks every lane.
const AllLanes = -1

// logClusterParts are the visual parts of a log cluster relative to its
// anchor: a trunk across the floor and a branch on top.
var logClusterParts = []iso.WorldVector{
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 2, Z: 0},
	{X: 0, Y: 3, Z: 0},
	{X: 1, Y: 1, Z: 1},
}

// Obstacle is one hazard moving towards the player. Instances created by
// the same spawn share a SpawnID.
type Obstacle struct {
	SpawnID uint64
	Kind    ObstacleKind
	Lane    int // AllLanes for lane-independent hazards
	Level   int // z level the hazard occupies
	Offset  float64

	prevOffset float64 // Offset before the latest move
}

// WorldX returns the obstacle's x rounded to the nearest grid column.
func (o Obstacle) WorldX() int {
	return int(math.Round(o.Offset))
}

// Crossed reports whether the latest move carried the obstacle from ahead
// of column x to behind it without landing on it.
func (o Obstacle) Crossed(x int) bool {
	return int(math.Round(o.prevOffset)) > x && o.WorldX() < x
}

// Blocks reports whether the obstacle occupies lane.
func (o Obstacle) Blocks(lane int) bool {
	return o.Lane == AllLanes || o.Lane == lane
}

// Parts returns the grid cells the obstacle is drawn at. Anchor y for
// lane-independent obstacles is 0.
func (o Obstacle) Parts() []iso.WorldVector {
	anchor := iso.Vec(int(math.Floor(o.Offset)), o.Lane, o.Level)
	if o.Kind != LogCluster {
		return []iso.WorldVector{anchor}
	}
	anchor.Y = 0
	parts := make([]iso.WorldVector, len(logClusterParts))
	for i, p := range logClusterParts {
		parts[i] = anchor.Add(p)
	}
	return parts
}

// Spawner creates obstacles on a timer, moves them with the world and
// prunes them once they pass the recycle threshold.
type Spawner struct {
	cfg       config.ObstaclesConfig
	lanes     int
	level     int
	recycleAt float64

	rng       *rand.Rand
	enabled   bool
	timer     float64
	nextID    uint64
	obstacles []Obstacle
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(cfg config.ObstaclesConfig, world config.WorldConfig, groundLevel int, seed int64) *Spawner {
	return &Spawner{
		cfg:       cfg,
		lanes:     world.FloorWidth,
		level:     groundLevel,
		recycleAt: world.RecycleAt,
		rng:       rand.New(rand.NewSource(seed)),
		enabled:   cfg.Enabled,
		obstacles: make([]Obstacle, 0, 16),
	}
}

// SetEnabled turns spawning on or off. Existing obstacles keep moving.
func (s *Spawner) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether new obstacles are spawned.
func (s *Spawner) Enabled() bool {
	return s.enabled
}

// Reset clears all obstacles and the spawn timer.
func (s *Spawner) Reset() {
	s.obstacles = s.obstacles[:0]
	s.timer = 0
}

// Timer returns the time accumulated towards the next spawn.
func (s *Spawner) Timer() float64 {
	return s.timer
}

// Obstacles returns the active obstacles. The slice must not be modified.
func (s *Spawner) Obstacles() []Obstacle {
	return s.obstacles
}

// Update moves obstacles by speed*dt, prunes those behind the recycle
// threshold and spawns a new archetype once interval has elapsed.
// Returns how many spawns were pruned.
func (s *Spawner) Update(dt, speed, interval float64) int {
	dx := speed * dt
	for i := range s.obstacles {
		s.obstacles[i].prevOffset = s.obstacles[i].Offset
		s.obstacles[i].Offset -= dx
	}

	// Remove obstacles that have moved past the threshold
	pruned := 0
	var lastPruned uint64
	valid := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Offset >= s.recycleAt {
			valid = append(valid, o)
			continue
		}
		if pruned == 0 || o.SpawnID != lastPruned {
			pruned++
			lastPruned = o.SpawnID
		}
	}
	s.obstacles = valid

	if !s.enabled {
		return pruned
	}

	s.timer += dt
	if s.timer >= interval {
		s.timer = 0
		s.spawn(s.pick())
	}
	return pruned
}

// pick makes a weighted random choice of archetype.
func (s *Spawner) pick() ObstacleKind {
	w := s.cfg.Weights
	total := w.Rock + w.CutTreeRow + w.LogCluster
	r := s.rng.Float64() * total
	switch {
	case r < w.Rock:
		return Rock
	case r < w.Rock+w.CutTreeRow:
		return CutTree
	default:
		return LogCluster
	}
}

// spawn instantiates an archetype at the spawn position.
func (s *Spawner) spawn(kind ObstacleKind) {
	s.nextID++
	id := s.nextID
	at := s.cfg.SpawnX

	switch kind {
	case Rock:
		s.obstacles = append(s.obstacles, Obstacle{
			SpawnID: id, Kind: Rock, Lane: s.rng.Intn(s.lanes), Level: s.level, Offset: at, prevOffset: at,
		})
	case CutTree:
		// One tree per lane, a full row
		for lane := 0; lane < s.lanes; lane++ {
			s.obstacles = append(s.obstacles, Obstacle{
				SpawnID: id, Kind: CutTree, Lane: lane, Level: s.level, Offset: at, prevOffset: at,
			})
		}
	case LogCluster:
		s.obstacles = append(s.obstacles, Obstacle{
			SpawnID: id, Kind: LogCluster, Lane: AllLanes, Level: s.level, Offset: at, prevOffset: at,
		})
	}
}
