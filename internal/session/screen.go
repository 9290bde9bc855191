package session

import "github.com/vovakirdan/momorun/internal/gesture"

// Screen is the runner-side screen the controller mirrors.
type Screen int

const (
	MainMenu Screen = iota
	CalorieSetup
	Playing
	Over
)

// String returns the wire name of the screen.
func (s Screen) String() string {
	switch s {
	case MainMenu:
		return gesture.ScreenMainMenu
	case CalorieSetup:
		return gesture.ScreenCalorieSetup
	case Playing:
		return gesture.ScreenGame
	case Over:
		return gesture.ScreenGameOver
	default:
		return "unknown"
	}
}

var screenTransitions = map[Screen][]Screen{
	MainMenu:     {CalorieSetup, Playing},
	CalorieSetup: {Playing, MainMenu},
	Playing:      {Over, MainMenu},
	Over:         {Playing, CalorieSetup, MainMenu},
}

func canChangeScreen(from, to Screen) bool {
	for _, s := range screenTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
