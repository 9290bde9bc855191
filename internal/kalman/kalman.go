// Package kalman implements the scalar Kalman filter used to smooth each
// accelerometer axis. The state transition and observation models are
// identity and there is no control input.
package kalman

import (
	"errors"
	"fmt"
)

// Default noise parameters for device-motion acceleration.
const (
	DefaultProcessNoise     = 0.05
	DefaultObservationNoise = 0.5
)

// ErrNonPositiveNoise is returned when a filter is configured with a noise
// covariance that is zero or negative.
var ErrNonPositiveNoise = errors.New("kalman: noise covariance must be positive")

// State is the estimate of one axis together with its error covariance.
type State struct {
	Estimate   float64
	Covariance float64
}

// Predict propagates the state one step. The estimate is unchanged and the
// covariance grows by the process noise q.
func (s State) Predict(q float64) State {
	return State{
		Estimate:   s.Estimate,
		Covariance: s.Covariance + q,
	}
}

// Update folds a measurement into the state using observation noise r.
func (s State) Update(measurement, r float64) State {
	gain := s.Covariance / (s.Covariance + r)
	return State{
		Estimate:   s.Estimate + gain*(measurement-s.Estimate),
		Covariance: (1 - gain) * s.Covariance,
	}
}

// Filter runs predict+update with fixed noise parameters.
type Filter struct {
	state State
	q     float64
	r     float64
}

// New creates a filter starting from initial. Both noise parameters must be
// positive and the initial covariance must not be negative.
func New(q, r float64, initial State) (*Filter, error) {
	if q <= 0 || r <= 0 {
		return nil, fmt.Errorf("%w (q=%v, r=%v)", ErrNonPositiveNoise, q, r)
	}
	if initial.Covariance < 0 {
		return nil, fmt.Errorf("kalman: initial covariance must not be negative, got %v", initial.Covariance)
	}
	return &Filter{state: initial, q: q, r: r}, nil
}

// Step runs one predict+update cycle and returns the new estimate.
func (f *Filter) Step(measurement float64) float64 {
	f.state = f.state.Predict(f.q).Update(measurement, f.r)
	return f.state.Estimate
}

// State returns the current filter state.
func (f *Filter) State() State {
	return f.state
}

// Reset replaces the filter state.
func (f *Filter) Reset(s State) {
	f.state = s
}
