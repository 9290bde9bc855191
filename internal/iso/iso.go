// Package iso maps world-grid coordinates to isometric screen coordinates.
// The projection is a fixed diamond basis: every world axis contributes a
// constant screen offset, so projecting is a pure linear map.
package iso

import "math"

// Screen offsets contributed by one unit along each world axis.
var (
	AxisX = ScreenPoint{X: 16, Y: 8}
	AxisY = ScreenPoint{X: -16, Y: 8}
	AxisZ = ScreenPoint{X: 0, Y: 8}
)

// depthPerLevel lifts draw order for every world z level.
const depthPerLevel = 16

// WorldVector is an integer position on the world grid.
// X runs along the track, Y across lanes, Z is the vertical level.
type WorldVector struct {
	X, Y, Z int
}

// Vec builds a WorldVector.
func Vec(x, y, z int) WorldVector {
	return WorldVector{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two vectors.
func (v WorldVector) Add(o WorldVector) WorldVector {
	return WorldVector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale multiplies every component by k.
func (v WorldVector) Scale(k int) WorldVector {
	return WorldVector{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// ScreenPoint is a projected 2D position. It is always derived from a world
// position and never stored as ground truth.
type ScreenPoint struct {
	X, Y float64
}

// Add returns the component-wise sum of two points.
func (p ScreenPoint) Add(o ScreenPoint) ScreenPoint {
	return ScreenPoint{X: p.X + o.X, Y: p.Y + o.Y}
}

// Scale multiplies both components by k.
func (p ScreenPoint) Scale(k float64) ScreenPoint {
	return ScreenPoint{X: p.X * k, Y: p.Y * k}
}

// Lerp interpolates between p and o by t in [0, 1].
func (p ScreenPoint) Lerp(o ScreenPoint, t float64) ScreenPoint {
	return ScreenPoint{
		X: p.X*(1-t) + o.X*t,
		Y: p.Y*(1-t) + o.Y*t,
	}
}

// Project maps a world position to its screen position.
func Project(v WorldVector) ScreenPoint {
	return AxisX.Scale(float64(v.X)).
		Add(AxisY.Scale(float64(v.Y))).
		Add(AxisZ.Scale(float64(v.Z)))
}

// Depth returns the draw order of a world position. Higher z draws above,
// larger y (further away) draws behind.
func Depth(v WorldVector) float64 {
	return -Project(v).Y + float64(v.Z*depthPerLevel)
}

// ProjectSmooth projects a fractional world x by interpolating between the
// projections of floor(x) and floor(x)+1. Scrolling entities use this for
// sub-tile motion.
func ProjectSmooth(x float64, y, z int) ScreenPoint {
	fx := math.Floor(x)
	base := Project(WorldVector{X: int(fx), Y: y, Z: z})
	next := Project(WorldVector{X: int(fx) + 1, Y: y, Z: z})
	return base.Lerp(next, x-fx)
}

// DepthSmooth is the draw order of a fractional world x.
func DepthSmooth(x float64, y, z int) float64 {
	return -ProjectSmooth(x, y, z).Y + float64(z*depthPerLevel)
}
