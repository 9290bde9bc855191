package runner

import (
	"math"
	"sort"

	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/iso"
)

// floorLevel is the z level tiles are drawn at.
const floorLevel = 0

// TileKind distinguishes lane tiles from the border rows on either side.
type TileKind int

const (
	TileFloor TileKind = iota
	TileBorder
)

// Tile is one recyclable floor cell. Offset is the authoritative world x;
// the integer position is derived from it.
type Tile struct {
	Kind   TileKind
	Row    int
	Offset float64
}

// WorldPosition returns the tile's integer grid position.
func (t Tile) WorldPosition() iso.WorldVector {
	return iso.Vec(int(math.Floor(t.Offset)), t.Row, floorLevel)
}

// Screen returns the smoothed screen position of the tile.
func (t Tile) Screen() iso.ScreenPoint {
	return iso.ProjectSmooth(t.Offset, t.Row, floorLevel)
}

// Depth returns the draw order of the tile.
func (t Tile) Depth() float64 {
	return iso.DepthSmooth(t.Offset, t.Row, floorLevel)
}

// Scroller owns a fixed set of tiles and moves them past the player,
// recycling each tile that falls behind to the front of its row.
type Scroller struct {
	cfg   config.WorldConfig
	tiles []Tile
	rows  map[int][]int // row -> tile indices

	scratch []int
}

// NewScroller lays out the floor: lane rows 0..FloorWidth-1 plus a border
// row on each side, each spanning TileStart..TileEnd.
func NewScroller(cfg config.WorldConfig) *Scroller {
	s := &Scroller{
		cfg:  cfg,
		rows: make(map[int][]int),
	}
	for row := -1; row <= cfg.FloorWidth; row++ {
		kind := TileFloor
		if row < 0 || row == cfg.FloorWidth {
			kind = TileBorder
		}
		for x := cfg.TileStart; x <= cfg.TileEnd; x++ {
			s.rows[row] = append(s.rows[row], len(s.tiles))
			s.tiles = append(s.tiles, Tile{Kind: kind, Row: row, Offset: float64(x)})
		}
	}
	return s
}

// Reset restores the initial layout.
func (s *Scroller) Reset() {
	for _, idx := range s.rows {
		for i, ti := range idx {
			s.tiles[ti].Offset = float64(s.cfg.TileStart + i)
		}
	}
}

// Advance moves every tile back by speed*dt, then recycles the tiles that
// fell below the recycle threshold. Recycling happens after all tiles have
// moved, lowest offset first, so each recycled tile lands exactly one unit
// ahead of the current row maximum. Returns the number of recycled tiles.
func (s *Scroller) Advance(dt, speed float64) int {
	dx := speed * dt
	for i := range s.tiles {
		s.tiles[i].Offset -= dx
	}

	recycled := 0
	for _, idx := range s.rows {
		behind := s.scratch[:0]
		rowMax := math.Inf(-1)
		for _, ti := range idx {
			off := s.tiles[ti].Offset
			if off < s.cfg.RecycleAt {
				behind = append(behind, ti)
			}
			if off > rowMax {
				rowMax = off
			}
		}
		if len(behind) == 0 {
			continue
		}
		sort.Slice(behind, func(a, b int) bool {
			return s.tiles[behind[a]].Offset < s.tiles[behind[b]].Offset
		})
		for _, ti := range behind {
			rowMax++
			s.tiles[ti].Offset = rowMax
			recycled++
		}
		s.scratch = behind
	}
	return recycled
}

// Tiles returns the tiles. The slice must not be modified.
func (s *Scroller) Tiles() []Tile {
	return s.tiles
}

// Row returns a copy of one row's tiles ordered by offset.
func (s *Scroller) Row(row int) []Tile {
	idx := s.rows[row]
	out := make([]Tile, 0, len(idx))
	for _, ti := range idx {
		out = append(out, s.tiles[ti])
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Offset < out[b].Offset })
	return out
}

// Rows returns the row indices from nearest border to farthest border.
func (s *Scroller) Rows() []int {
	rows := make([]int, 0, len(s.rows))
	for row := -1; row <= s.cfg.FloorWidth; row++ {
		rows = append(rows, row)
	}
	return rows
}
