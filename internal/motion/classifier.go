// Package motion turns device-motion samples into discrete gestures.
//
// Each sample's user acceleration is rotated into the reference frame,
// smoothed per axis with a Kalman filter and integrated into a
// pseudo-velocity. A zero-velocity update clamps the velocity whenever the
// device is still. Velocity thresholds then classify jump, crouch, left
// and right, after which the classifier disarms until the debounce
// window has passed.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/momorun/internal/gesture"
	"github.com/vovakirdan/momorun/internal/kalman"
)

// Config holds the classifier thresholds.
type Config struct {
	StillThreshold   float64 // |filtered accel| below this on every axis means still
	JumpThreshold    float64 // velZ below -JumpThreshold is a jump
	CrouchThreshold  float64 // velZ above CrouchThreshold is a crouch
	LateralThreshold float64 // |velX| above this is left or right
	Debounce         float64 // seconds before re-arming after a gesture
	SampleRate       float64 // nominal Hz, used by sensors and traces

	ProcessNoise     float64
	ObservationNoise float64
}

// DefaultConfig returns the thresholds tuned for a wrist-worn device.
func DefaultConfig() Config {
	return Config{
		StillThreshold:   0.05,
		JumpThreshold:    0.25,
		CrouchThreshold:  0.25,
		LateralThreshold: 0.1,
		Debounce:         0.75,
		SampleRate:       60,
		ProcessNoise:     kalman.DefaultProcessNoise,
		ObservationNoise: kalman.DefaultObservationNoise,
	}
}

// ErrInvalidConfig is returned for thresholds that cannot classify anything.
var ErrInvalidConfig = errors.New("motion: invalid config")

// Validate checks that every threshold is positive.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"still threshold", c.StillThreshold},
		{"jump threshold", c.JumpThreshold},
		{"crouch threshold", c.CrouchThreshold},
		{"lateral threshold", c.LateralThreshold},
		{"debounce", c.Debounce},
		{"sample rate", c.SampleRate},
	}
	for _, chk := range checks {
		if chk.value <= 0 || math.IsNaN(chk.value) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, chk.name, chk.value)
		}
	}
	return nil
}

// ArmState tells whether the classifier may emit a gesture.
type ArmState int

const (
	Armed ArmState = iota
	Disarmed
)

func (s ArmState) String() string {
	switch s {
	case Armed:
		return "Armed"
	case Disarmed:
		return "Disarmed"
	default:
		return "Unknown"
	}
}

// armTransitions lists the legal arm state changes.
var armTransitions = map[ArmState][]ArmState{
	Armed:    {Disarmed},
	Disarmed: {Armed},
}

func canTransition(from, to ArmState) bool {
	for _, s := range armTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Classifier is a single-threaded gesture classifier. It is driven by the
// sensor's sample callback and must not be shared between goroutines.
type Classifier struct {
	cfg Config

	filters [3]*kalman.Filter

	fetching bool
	arm      ArmState
	moving   bool

	velocity Vector3
	filtered Vector3

	hasPrev   bool
	prevTime  float64
	lastEvent float64
	lateral   gesture.Gesture
	vertical  gesture.Gesture
}

// NewClassifier creates a stopped classifier.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier{cfg: cfg}
	for i := range c.filters {
		f, err := kalman.New(cfg.ProcessNoise, cfg.ObservationNoise, kalman.State{Covariance: 1})
		if err != nil {
			return nil, fmt.Errorf("motion: %w", err)
		}
		c.filters[i] = f
	}
	return c, nil
}

// Start resets the filter state and begins classifying. Returns false,
// leaving the classifier stopped, if the sensor is unavailable.
func (c *Classifier) Start(sensor Sensor) bool {
	if sensor == nil || !sensor.Available() {
		c.fetching = false
		return false
	}

	for _, f := range c.filters {
		f.Reset(kalman.State{Covariance: 1})
	}
	c.velocity = Vector3{}
	c.filtered = Vector3{}
	c.hasPrev = false
	c.moving = false
	c.arm = Armed
	c.lateral, c.vertical = gesture.None, gesture.None
	c.fetching = true
	return true
}

// Stop stops classifying. Later samples are ignored.
func (c *Classifier) Stop() {
	c.fetching = false
}

// Fetching reports whether the classifier is consuming samples.
func (c *Classifier) Fetching() bool { return c.fetching }

// Arm returns the current arm state.
func (c *Classifier) Arm() ArmState { return c.arm }

// Moving reports whether the last sample was above the still threshold.
func (c *Classifier) Moving() bool { return c.moving }

// Velocity returns the integrated pseudo-velocity.
func (c *Classifier) Velocity() Vector3 { return c.velocity }

// Filtered returns the last filtered acceleration.
func (c *Classifier) Filtered() Vector3 { return c.filtered }

// Labels returns the held lateral and vertical gesture labels.
// Either may be gesture.None.
func (c *Classifier) Labels() (lateral, vertical gesture.Gesture) {
	return c.lateral, c.vertical
}

func (c *Classifier) setArm(to ArmState) {
	if canTransition(c.arm, to) {
		c.arm = to
	}
}

// Process consumes one sample and returns the gestures it produced, with
// the vertical gesture (if any) before the lateral one.
func (c *Classifier) Process(s Sample) []gesture.Gesture {
	if !c.fetching {
		return nil
	}

	world := s.Rotation.ToWorld(s.UserAccel)
	c.filtered = Vector3{
		X: c.filters[0].Step(world.X),
		Y: c.filters[1].Step(world.Y),
		Z: c.filters[2].Step(world.Z),
	}

	// Re-arm once the debounce window has passed.
	if c.arm == Disarmed && s.Timestamp-c.lastEvent >= c.cfg.Debounce {
		c.setArm(Armed)
		c.clearLabels()
	}

	if c.hasPrev {
		dt := s.Timestamp - c.prevTime
		c.velocity.X += c.filtered.X * dt
		c.velocity.Y += c.filtered.Y * dt
		c.velocity.Z += c.filtered.Z * dt
	}
	c.hasPrev = true
	c.prevTime = s.Timestamp

	// Zero-velocity update.
	still := c.cfg.StillThreshold
	c.moving = math.Abs(c.filtered.X) >= still ||
		math.Abs(c.filtered.Y) >= still ||
		math.Abs(c.filtered.Z) >= still
	if !c.moving {
		c.velocity = Vector3{}
		c.clearLabels()
	}

	if c.arm != Armed {
		return nil
	}

	var out []gesture.Gesture
	vertical, lateral := gesture.None, gesture.None

	switch {
	case c.velocity.Z < -c.cfg.JumpThreshold:
		vertical = gesture.Jump
	case c.velocity.Z > c.cfg.CrouchThreshold:
		vertical = gesture.Crouch
	}
	switch {
	case c.velocity.X > c.cfg.LateralThreshold:
		lateral = gesture.Left
	case c.velocity.X < -c.cfg.LateralThreshold:
		lateral = gesture.Right
	}

	if vertical != gesture.None {
		out = append(out, vertical)
	}
	if lateral != gesture.None {
		out = append(out, lateral)
	}
	if len(out) == 0 {
		return nil
	}

	c.vertical, c.lateral = vertical, lateral
	c.setArm(Disarmed)
	c.lastEvent = s.Timestamp
	return out
}

func (c *Classifier) clearLabels() {
	c.lateral, c.vertical = gesture.None, gesture.None
}
