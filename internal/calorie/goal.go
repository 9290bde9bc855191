// Package calorie holds the daily calorie goal picked on the setup screen.
package calorie

import (
	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/gesture"
)

// Goal is the calorie target being adjusted by the controller.
// The value always stays within [Min, Max].
type Goal struct {
	value int
	cfg   config.CaloriesConfig
}

// NewGoal creates a goal at the configured default.
func NewGoal(cfg config.CaloriesConfig) *Goal {
	g := &Goal{cfg: cfg}
	g.Reset()
	return g
}

// Value returns the current goal.
func (g *Goal) Value() int {
	return g.value
}

// Set moves the goal to v, clamped to the configured range.
func (g *Goal) Set(v int) {
	g.value = core.Clamp(v, g.cfg.Min, g.cfg.Max)
}

// Reset restores the default goal.
func (g *Goal) Reset() {
	g.Set(g.cfg.Default)
}

// Increase adds one step.
func (g *Goal) Increase() int {
	g.Set(g.value + g.cfg.Step)
	return g.value
}

// Decrease removes one step.
func (g *Goal) Decrease() int {
	g.Set(g.value - g.cfg.Step)
	return g.value
}

// Apply handles a calorie gesture and reports whether it was one.
// CalorieDone is reported as handled but leaves the value alone.
func (g *Goal) Apply(gs gesture.Gesture) bool {
	switch gs {
	case gesture.CalorieUp:
		g.Increase()
	case gesture.CalorieDown:
		g.Decrease()
	case gesture.CalorieDone:
	default:
		return false
	}
	return true
}
