package motion

import (
	"context"
)

// Sensor is a source of device-motion samples.
type Sensor interface {
	// Available reports whether the sensor can produce samples at all.
	Available() bool

	// Samples streams readings until ctx is cancelled or the source ends,
	// then closes the channel.
	Samples(ctx context.Context) (<-chan Sample, error)
}

// ReplaySensor plays back an in-memory list of samples.
type ReplaySensor struct {
	samples []Sample
}

// NewReplaySensor creates a sensor that emits samples in order.
func NewReplaySensor(samples []Sample) *ReplaySensor {
	return &ReplaySensor{samples: samples}
}

// Available always reports true.
func (r *ReplaySensor) Available() bool { return true }

// Samples emits every sample, then closes the channel.
func (r *ReplaySensor) Samples(ctx context.Context) (<-chan Sample, error) {
	ch := make(chan Sample)
	go func() {
		defer close(ch)
		for _, s := range r.samples {
			select {
			case ch <- s:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
