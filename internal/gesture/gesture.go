// Package gesture defines the discrete controller gestures and the keyed
// wire messages that carry them between the controller and the runner.
package gesture

// Gesture is a discrete event produced by the controller.
type Gesture int

const (
	None Gesture = iota
	Left
	Right
	Jump
	Crouch
	Restart
	Start
	CalorieUp
	CalorieDown
	CalorieDone
	GoToSetup
)

// String returns a human-readable name for the gesture.
func (g Gesture) String() string {
	switch g {
	case None:
		return "None"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Jump:
		return "Jump"
	case Crouch:
		return "Crouch"
	case Restart:
		return "Restart"
	case Start:
		return "Start"
	case CalorieUp:
		return "CalorieUp"
	case CalorieDown:
		return "CalorieDown"
	case CalorieDone:
		return "CalorieDone"
	case GoToSetup:
		return "GoToSetup"
	default:
		return "Unknown"
	}
}

// IsLocomotion reports whether the gesture drives the runner's player.
func (g Gesture) IsLocomotion() bool {
	switch g {
	case Left, Right, Jump, Crouch:
		return true
	}
	return false
}

// Wire values of the direction key.
const (
	DirLeft   = "left"
	DirRight  = "right"
	DirJump   = "jump"
	DirCrouch = "crouch"
)

// Wire values of the calorieDirection key.
const (
	CalorieDirUp   = "up"
	CalorieDirDown = "down"
)

// ParseDirection maps a direction wire value to its gesture.
func ParseDirection(s string) (Gesture, bool) {
	switch s {
	case DirLeft:
		return Left, true
	case DirRight:
		return Right, true
	case DirJump:
		return Jump, true
	case DirCrouch:
		return Crouch, true
	}
	return None, false
}

// direction returns the wire value for a locomotion gesture.
func (g Gesture) direction() string {
	switch g {
	case Left:
		return DirLeft
	case Right:
		return DirRight
	case Jump:
		return DirJump
	case Crouch:
		return DirCrouch
	}
	return ""
}
