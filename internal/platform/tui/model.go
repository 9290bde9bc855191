package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/gesture"
	"github.com/vovakirdan/momorun/internal/session"
)

// Model is the Bubble Tea model for one runner session.
type Model struct {
	sess      *session.Session
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      *KeyMapper
	logger    *log.Logger
	gameState core.GameState
	quitting  bool
}

// NewModel creates a Bubble Tea model driving sess.
func NewModel(sess *session.Session, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Validate() != nil {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.Default()
	}
	return Model{
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   NewKeyMapper(),
		logger: logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		g   gesture.Gesture
		cmd Command
	)
	if m.sess.Screen() == session.CalorieSetup {
		g, cmd = m.keys.MapCalorieKey(msg)
	} else {
		g, cmd = m.keys.MapKey(msg)
	}

	switch cmd {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandPause:
		if m.sess.Screen() == session.Playing {
			m.sess.SetPaused(!m.sess.State().Paused)
		}
		return m, nil
	case CommandScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if g != gesture.None {
		m.sess.Handle(g)
	}
	return m, nil
}

// handleTick advances the simulation by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.sess.Tick(1 / float64(m.config.TickRate))
	m.gameState = res.State
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".momorun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("momorun_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// draw renders the world plus whichever menu is on screen.
func (m *Model) draw() {
	m.sess.Render(m.screen)
	switch m.sess.Screen() {
	case session.MainMenu:
		drawMainMenu(m.screen)
	case session.CalorieSetup:
		drawCalorieSetup(m.screen, m.sess.Goal())
	}
	drawLinkStatus(m.screen, m.sess.ControllerReachable())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for sess and blocks until the user quits.
func Run(sess *session.Session, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(sess, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
