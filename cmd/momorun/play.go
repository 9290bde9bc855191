package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/momorun/internal/core"
	"github.com/vovakirdan/momorun/internal/platform/tui"
	"github.com/vovakirdan/momorun/internal/session"
	"github.com/vovakirdan/momorun/internal/storage"
	"github.com/vovakirdan/momorun/internal/transport"
)

var (
	flagDifficulty string
	flagListen     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run in the terminal",
	Long: `Start the runner in the terminal.

Controls:
  Left/A, Right/D  - Change lane
  Up/W/Space       - Jump
  Down/S           - Crouch
  Enter            - Start
  C                - Set calorie goal (menu)
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot to ~/.momorun/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow, speed up over time
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

With --listen, a motion controller can connect over websocket and its
gestures are handled exactly like key presses.

Examples:
  momorun play
  momorun play --difficulty easy
  momorun play --listen :8765`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagListen, "listen", "", "Accept a websocket controller on this address (e.g. :8765)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, logFile, err := fileLogger("play")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	relay := transport.NewRelay(cfg.Transport.InboxSize)
	opts := []session.Option{session.WithLogger(logger)}
	if flagSeed != 0 {
		opts = append(opts, session.WithSeed(flagSeed))
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history database: %v\n", err)
		// Continue without storage - the game still works
	} else {
		defer store.Close()
		opts = append(opts, session.WithStore(store))
	}

	sess, err := session.New(cfg, relay, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("session pump stopped", "err", err)
		}
	}()

	if flagListen != "" {
		srv := transport.NewServer(logger, func(link *transport.WSLink) {
			relay.Attach(link)
			sess.Resync()
		})
		go func() {
			if err := srv.ListenAndServe(ctx, flagListen, cfg.Transport.Path); err != nil {
				logger.Error("controller listener stopped", "err", err)
			}
		}()
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if err := tui.Run(sess, rc, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
