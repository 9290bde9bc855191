package gesture

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire keys. Exactly one is populated per message.
const (
	KeyDirection            = "direction"
	KeyRestart              = "restart"
	KeyStart                = "start"
	KeyCalorieDirection     = "calorieDirection"
	KeyCalorieDone          = "calorieDone"
	KeyGoToCalorieSetup     = "goToCalorieSetup"
	KeyScreenType           = "screenType"
	KeyCurrentCalorieValue  = "currentCalorieValue"
	KeySessionFinalCalories = "sessionFinalCalories"
)

// Screen names carried by the screenType key.
const (
	ScreenMainMenu     = "mainMenu"
	ScreenCalorieSetup = "calorieSetup"
	ScreenLoading      = "loading"
	ScreenGame         = "game"
	ScreenGameOver     = "gameOver"
)

var (
	// ErrEmptyMessage is returned for a message with no populated key.
	ErrEmptyMessage = errors.New("gesture: message has no key")
	// ErrMultipleKeys is returned for a message with more than one key.
	ErrMultipleKeys = errors.New("gesture: message has more than one key")
	// ErrInvalidMessage is returned when a message fails schema validation.
	ErrInvalidMessage = errors.New("gesture: invalid message")
	// ErrUnknownValue is returned when encoding an enum key with a value
	// outside its set.
	ErrUnknownValue = errors.New("gesture: unknown value")
)

// Message is a single-key wire message.
type Message struct {
	Direction            *string  `json:"direction,omitempty"`
	Restart              *bool    `json:"restart,omitempty"`
	Start                *bool    `json:"start,omitempty"`
	CalorieDirection     *string  `json:"calorieDirection,omitempty"`
	CalorieDone          *bool    `json:"calorieDone,omitempty"`
	GoToCalorieSetup     *bool    `json:"goToCalorieSetup,omitempty"`
	ScreenType           *string  `json:"screenType,omitempty"`
	CurrentCalorieValue  *int     `json:"currentCalorieValue,omitempty"`
	SessionFinalCalories *float64 `json:"sessionFinalCalories,omitempty"`
}

// ForGesture builds the message that carries g.
func ForGesture(g Gesture) (Message, bool) {
	yes := true
	switch g {
	case Left, Right, Jump, Crouch:
		d := g.direction()
		return Message{Direction: &d}, true
	case Restart:
		return Message{Restart: &yes}, true
	case Start:
		return Message{Start: &yes}, true
	case CalorieUp:
		d := CalorieDirUp
		return Message{CalorieDirection: &d}, true
	case CalorieDown:
		d := CalorieDirDown
		return Message{CalorieDirection: &d}, true
	case CalorieDone:
		return Message{CalorieDone: &yes}, true
	case GoToSetup:
		return Message{GoToCalorieSetup: &yes}, true
	}
	return Message{}, false
}

// ScreenMessage announces the sender's current screen.
func ScreenMessage(screen string) Message {
	return Message{ScreenType: &screen}
}

// CalorieValueMessage syncs the calorie goal value.
func CalorieValueMessage(v int) Message {
	return Message{CurrentCalorieValue: &v}
}

// FinalCaloriesMessage hands off the calories burned in a session.
func FinalCaloriesMessage(kcal float64) Message {
	return Message{SessionFinalCalories: &kcal}
}

// Keys returns the populated keys in wire order.
func (m Message) Keys() []string {
	var keys []string
	if m.Direction != nil {
		keys = append(keys, KeyDirection)
	}
	if m.Restart != nil {
		keys = append(keys, KeyRestart)
	}
	if m.Start != nil {
		keys = append(keys, KeyStart)
	}
	if m.CalorieDirection != nil {
		keys = append(keys, KeyCalorieDirection)
	}
	if m.CalorieDone != nil {
		keys = append(keys, KeyCalorieDone)
	}
	if m.GoToCalorieSetup != nil {
		keys = append(keys, KeyGoToCalorieSetup)
	}
	if m.ScreenType != nil {
		keys = append(keys, KeyScreenType)
	}
	if m.CurrentCalorieValue != nil {
		keys = append(keys, KeyCurrentCalorieValue)
	}
	if m.SessionFinalCalories != nil {
		keys = append(keys, KeySessionFinalCalories)
	}
	return keys
}

// Key returns the single populated key, or "" if the message is malformed.
func (m Message) Key() string {
	keys := m.Keys()
	if len(keys) != 1 {
		return ""
	}
	return keys[0]
}

// Gesture returns the gesture carried by the message. Sync-only keys
// (screenType, currentCalorieValue, sessionFinalCalories) carry none.
func (m Message) Gesture() (Gesture, bool) {
	switch {
	case m.Direction != nil:
		return ParseDirection(*m.Direction)
	case m.Restart != nil && *m.Restart:
		return Restart, true
	case m.Start != nil && *m.Start:
		return Start, true
	case m.CalorieDirection != nil:
		switch *m.CalorieDirection {
		case CalorieDirUp:
			return CalorieUp, true
		case CalorieDirDown:
			return CalorieDown, true
		}
	case m.CalorieDone != nil && *m.CalorieDone:
		return CalorieDone, true
	case m.GoToCalorieSetup != nil && *m.GoToCalorieSetup:
		return GoToSetup, true
	}
	return None, false
}

// String renders the message as key=value for logs.
func (m Message) String() string {
	b, err := json.Marshal(m)
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}

// Encode serializes a message after checking it has exactly one key.
func Encode(m Message) ([]byte, error) {
	switch n := len(m.Keys()); {
	case n == 0:
		return nil, ErrEmptyMessage
	case n > 1:
		return nil, ErrMultipleKeys
	}
	if err := m.checkValues(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (m Message) checkValues() error {
	switch {
	case m.Direction != nil:
		if _, ok := ParseDirection(*m.Direction); !ok {
			return fmt.Errorf("%w: direction %q", ErrUnknownValue, *m.Direction)
		}
	case m.CalorieDirection != nil:
		if v := *m.CalorieDirection; v != CalorieDirUp && v != CalorieDirDown {
			return fmt.Errorf("%w: calorieDirection %q", ErrUnknownValue, v)
		}
	case m.ScreenType != nil:
		switch *m.ScreenType {
		case ScreenMainMenu, ScreenCalorieSetup, ScreenLoading, ScreenGame, ScreenGameOver:
		default:
			return fmt.Errorf("%w: screenType %q", ErrUnknownValue, *m.ScreenType)
		}
	case m.SessionFinalCalories != nil:
		if *m.SessionFinalCalories < 0 {
			return fmt.Errorf("%w: sessionFinalCalories %v", ErrUnknownValue, *m.SessionFinalCalories)
		}
	}
	// Flag keys are only ever sent as true
	for key, flag := range map[string]*bool{
		KeyRestart:          m.Restart,
		KeyStart:            m.Start,
		KeyCalorieDone:      m.CalorieDone,
		KeyGoToCalorieSetup: m.GoToCalorieSetup,
	} {
		if flag != nil && !*flag {
			return fmt.Errorf("%w: %s false", ErrUnknownValue, key)
		}
	}
	return nil
}

// Decode parses and validates a wire message.
func Decode(data []byte) (Message, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	switch n := len(raw); {
	case n == 0:
		return Message{}, ErrEmptyMessage
	case n > 1:
		return Message{}, ErrMultipleKeys
	}
	if err := messageSchema.Validate(raw); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return m, nil
}
