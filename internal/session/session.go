// Package session drives one runner together with its controller link:
// it routes incoming gestures to the right screen, mirrors screen changes
// back to the controller and records finished runs and calories.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/momorun/internal/calorie"
	"github.com/vovakirdan/momorun/internal/config"
	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/gesture"
	"github.com/vovakirdan/momorun/internal/runner"
	"github.com/vovakirdan/momorun/internal/storage"
	"github.com/vovakirdan/momorun/internal/transport"
)

// Store is the persistence the session writes to.
type Store interface {
	SaveRun(storage.Run) (string, error)
	SetTarget(target float64) (storage.Ledger, error)
	AddCalories(amount float64) (storage.Ledger, error)
}

// Option configures a Session.
type Option func(*Session)

// WithStore persists runs and calories to st.
func WithStore(st Store) Option {
	return func(s *Session) { s.store = st }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSeed seeds the obstacle spawner.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithScreen sets the starting screen.
func WithScreen(screen Screen) Option {
	return func(s *Session) { s.screen = screen }
}

// Session owns the runner, the calorie goal and the controller transport.
// Tick and Render are called from the UI loop; incoming messages are
// handled on the goroutine running Run.
type Session struct {
	id     string
	tr     transport.Transport
	store  Store
	logger *log.Logger
	seed   int64

	mu     sync.Mutex
	game   *runner.Game
	goal   *calorie.Goal
	screen Screen
	saved  []storage.Run
}

// New creates a session on the main menu.
func New(cfg config.Config, tr transport.Transport, opts ...Option) (*Session, error) {
	if tr == nil {
		tr = transport.NewOffline()
	}
	s := &Session{
		id:     uuid.NewString(),
		tr:     tr,
		seed:   time.Now().UnixNano(),
		screen: MainMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.With("session", s.id[:8])

	game, err := runner.New(cfg, s.seed)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.game = game
	s.goal = calorie.NewGoal(cfg.Calories)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Run pumps incoming controller messages until ctx is cancelled or the
// transport closes. The current screen is announced once on entry.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	s.announce()
	s.mu.Unlock()

	incoming := s.tr.Incoming()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.tr.Done():
			return transport.ErrClosed
		case msg, ok := <-incoming:
			if !ok {
				return transport.ErrClosed
			}
			s.HandleMessage(msg)
		}
	}
}

// HandleMessage applies one controller message.
func (s *Session) HandleMessage(msg gesture.Message) {
	if g, ok := msg.Gesture(); ok {
		s.Handle(g)
		return
	}

	switch {
	case msg.SessionFinalCalories != nil:
		s.addCalories(*msg.SessionFinalCalories)
	default:
		s.logger.Debug("ignoring message", "msg", msg.String())
	}
}

// Handle applies a gesture according to the current screen. Locomotion
// gestures are queued for the next tick; menu gestures change screens.
func (s *Session) Handle(g gesture.Gesture) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.screen {
	case MainMenu:
		switch g {
		case gesture.Start:
			s.startRound()
		case gesture.GoToSetup:
			s.setScreen(CalorieSetup)
			s.sendGoal()
		}

	case CalorieSetup:
		switch g {
		case gesture.CalorieUp, gesture.CalorieDown:
			s.goal.Apply(g)
			s.sendGoal()
		case gesture.CalorieDone:
			s.saveTarget()
			s.startRound()
		}

	case Playing:
		switch {
		case g.IsLocomotion(), g == gesture.Restart:
			if !s.game.Inbox().Push(g) {
				s.logger.Debug("inbox full, gesture dropped", "gesture", g)
			}
		}

	case Over:
		switch g {
		case gesture.Restart, gesture.Start:
			s.startRound()
		case gesture.GoToSetup:
			s.setScreen(CalorieSetup)
			s.sendGoal()
		}
	}
}

// Tick advances the game by dt seconds while a round is on screen.
// The first collision of a round moves to the game-over screen and
// saves the run.
func (s *Session) Tick(dt float64) core.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != Playing {
		return core.StepResult{State: s.game.State()}
	}

	res := s.game.Step(dt)
	if res.Collided {
		s.logger.Info("round over", "score", res.State.Score, "elapsed", fmt.Sprintf("%.1fs", res.State.Elapsed))
		s.saveRun(res.State)
		s.setScreen(Over)
	}
	return res
}

// Render draws the game onto dst.
func (s *Session) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Render(dst)
}

// Screen returns the current screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Goal returns the calorie goal being set.
func (s *Session) Goal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goal.Value()
}

// State returns the game state.
func (s *Session) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// SetPaused pauses or resumes the round.
func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPaused(paused)
}

// Runs returns the runs finished in this session.
func (s *Session) Runs() []storage.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Run, len(s.saved))
	copy(out, s.saved)
	return out
}

// Resync re-sends the current screen, and the goal while it is being
// set, so a freshly attached controller catches up.
func (s *Session) Resync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announce()
	if s.screen == CalorieSetup {
		s.sendGoal()
	}
}

// ControllerReachable reports whether the controller link is up.
func (s *Session) ControllerReachable() bool {
	return s.tr.Reachable()
}

// Close closes the transport.
func (s *Session) Close() error {
	return s.tr.Close()
}

// startRound resets the game and shows it. Callers hold mu.
func (s *Session) startRound() {
	s.game.Restart()
	s.setScreen(Playing)
}

// setScreen changes screen and tells the controller. Callers hold mu.
func (s *Session) setScreen(to Screen) {
	if !canChangeScreen(s.screen, to) {
		s.logger.Warn("illegal screen change", "from", s.screen, "to", to)
		return
	}
	s.logger.Debug("screen", "from", s.screen, "to", to)
	s.screen = to
	s.announce()
}

func (s *Session) announce() {
	s.tr.Send(gesture.ScreenMessage(s.screen.String()))
}

func (s *Session) sendGoal() {
	s.tr.Send(gesture.CalorieValueMessage(s.goal.Value()))
}

func (s *Session) saveTarget() {
	if s.store == nil {
		return
	}
	if _, err := s.store.SetTarget(float64(s.goal.Value())); err != nil {
		s.logger.Error("cannot save calorie target", "err", err)
	}
}

func (s *Session) saveRun(st core.GameState) {
	run := storage.Run{
		ID:               uuid.NewString(),
		Score:            st.Score,
		Duration:         st.Elapsed,
		ObstaclesCleared: st.Cleared,
	}
	s.saved = append(s.saved, run)
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveRun(run); err != nil {
		s.logger.Error("cannot save run", "err", err)
	}
}

func (s *Session) addCalories(kcal float64) {
	if s.store == nil {
		return
	}
	if l, err := s.store.AddCalories(kcal); err != nil {
		s.logger.Error("cannot add calories", "err", err)
	} else {
		s.logger.Info("calories", "today", l.TodayCalories, "target", l.DailyTarget)
	}
}
