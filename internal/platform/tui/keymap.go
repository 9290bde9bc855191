package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/momorun/internal/gesture"
)

// Command is a local action that never reaches the simulation.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandScreenshot
)

// KeyMapper translates Bubble Tea key messages to gestures.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to either a gesture or a local command.
// Keyboard play mirrors the controller: arrows and wasd steer, space jumps.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (gesture.Gesture, Command) {
	switch msg.String() {
	case "ctrl+c", "q":
		return gesture.None, CommandQuit
	case "p", "esc":
		return gesture.None, CommandPause
	case "ctrl+s":
		return gesture.None, CommandScreenshot

	case "left", "a":
		return gesture.Left, CommandNone
	case "right", "d":
		return gesture.Right, CommandNone
	case "up", "w", " ":
		return gesture.Jump, CommandNone
	case "down", "s":
		return gesture.Crouch, CommandNone
	case "r":
		return gesture.Restart, CommandNone
	case "enter":
		return gesture.Start, CommandNone
	case "c":
		return gesture.GoToSetup, CommandNone
	case "+", "=":
		return gesture.CalorieUp, CommandNone
	case "-", "_":
		return gesture.CalorieDown, CommandNone
	}
	return gesture.None, CommandNone
}

// MapCalorieKey is MapKey for the calorie setup screen, where the
// vertical keys pick the goal and enter confirms it.
func (km *KeyMapper) MapCalorieKey(msg tea.KeyMsg) (gesture.Gesture, Command) {
	switch msg.String() {
	case "up", "w", "right", "d":
		return gesture.CalorieUp, CommandNone
	case "down", "s", "left", "a":
		return gesture.CalorieDown, CommandNone
	case "enter", " ":
		return gesture.CalorieDone, CommandNone
	}
	return km.MapKey(msg)
}
