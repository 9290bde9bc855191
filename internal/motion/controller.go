package motion

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/momorun/internal/gesture"
	"github.com/vovakirdan/momorun/internal/transport"
)

// ErrSensorUnavailable is returned when the controller cannot start.
var ErrSensorUnavailable = errors.New("motion: sensor unavailable")

// Event is a gesture together with the sample time that produced it.
type Event struct {
	Timestamp float64
	Gesture   gesture.Gesture
}

// Stats summarises one controller run.
type Stats struct {
	Samples    int
	Gestures   int
	Sent       int
	Dropped    int
	LastScreen string
}

// Controller feeds sensor samples through a classifier and sends each
// gesture over a transport.
type Controller struct {
	classifier *Classifier
	logger     *log.Logger
	recorder   *TraceWriter
	onGesture  func(Event)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithRecorder records every consumed sample.
func WithRecorder(tw *TraceWriter) ControllerOption {
	return func(c *Controller) { c.recorder = tw }
}

// WithGestureHook is called for every classified gesture.
func WithGestureHook(fn func(Event)) ControllerOption {
	return func(c *Controller) { c.onGesture = fn }
}

// NewController creates a controller with its own classifier.
func NewController(cfg Config, logger *log.Logger, opts ...ControllerOption) (*Controller, error) {
	cl, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		classifier: cl,
		logger:     logger.With("session", uuid.NewString()[:8]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run classifies samples until ctx is cancelled or the sensor ends.
// Gestures are sent fire-and-forget; a send the transport drops is counted,
// never retried.
func (c *Controller) Run(ctx context.Context, sensor Sensor, tr transport.Transport) (Stats, error) {
	var stats Stats

	if !c.classifier.Start(sensor) {
		c.logger.Warn("sensor unavailable, not fetching")
		return stats, ErrSensorUnavailable
	}
	defer c.classifier.Stop()

	samples, err := sensor.Samples(ctx)
	if err != nil {
		return stats, err
	}
	c.logger.Info("controller started")

	var incoming <-chan gesture.Message
	if tr != nil {
		incoming = tr.Incoming()
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("controller stopped", "samples", stats.Samples, "gestures", stats.Gestures)
			return stats, nil

		case msg := <-incoming:
			c.handleRunnerMessage(msg, &stats)

		case s, ok := <-samples:
			if !ok {
				c.logger.Info("sensor finished", "samples", stats.Samples, "gestures", stats.Gestures)
				return stats, nil
			}
			stats.Samples++

			if c.recorder != nil {
				if err := c.recorder.Write(s); err != nil {
					c.logger.Warn("trace record failed, recording disabled", "err", err)
					c.recorder = nil
				}
			}

			for _, g := range c.classifier.Process(s) {
				stats.Gestures++
				if c.onGesture != nil {
					c.onGesture(Event{Timestamp: s.Timestamp, Gesture: g})
				}
				if tr == nil {
					continue
				}
				msg, _ := gesture.ForGesture(g)
				if tr.Send(msg) {
					stats.Sent++
					c.logger.Debug("gesture sent", "gesture", g, "t", s.Timestamp)
				} else {
					stats.Dropped++
					c.logger.Debug("gesture dropped", "gesture", g, "t", s.Timestamp)
				}
			}
		}
	}
}

func (c *Controller) handleRunnerMessage(msg gesture.Message, stats *Stats) {
	switch {
	case msg.ScreenType != nil:
		stats.LastScreen = *msg.ScreenType
		c.logger.Info("runner screen", "screen", *msg.ScreenType)
	case msg.CurrentCalorieValue != nil:
		c.logger.Info("calorie goal", "kcal", *msg.CurrentCalorieValue)
	default:
		c.logger.Debug("ignoring runner message", "message", msg.String())
	}
}

// Classify runs samples through a fresh classifier and returns every
// gesture with its timestamp.
func Classify(cfg Config, samples []Sample) ([]Event, error) {
	cl, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	cl.Start(NewReplaySensor(nil))

	var events []Event
	for _, s := range samples {
		for _, g := range cl.Process(s) {
			events = append(events, Event{Timestamp: s.Timestamp, Gesture: g})
		}
	}
	return events, nil
}
