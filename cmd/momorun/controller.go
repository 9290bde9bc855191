package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/momorun/internal/motion"
	"github.com/vovakirdan/momorun/internal/transport"
)

var (
	flagTrace    string
	flagConnect  string
	flagRecord   string
	flagRealtime bool
)

var controllerCmd = &cobra.Command{
	Use:   "controller",
	Short: "Replay a motion trace as a controller",
	Long: `Read motion samples from a recorded trace, classify them into gestures
and send each gesture to a runner started with 'momorun play --listen'.

Traces are zstd-compressed JSON lines, one sample per line. If the runner
cannot be reached the gestures are still classified and logged.

Examples:
  momorun controller --trace walk.jsonl.zst
  momorun controller --trace walk.jsonl.zst --connect ws://192.168.1.20:8765/ws
  momorun controller --trace walk.jsonl.zst --record copy.jsonl.zst --realtime=false`,
	Args: cobra.NoArgs,
	Run:  runController,
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the gestures a motion trace produces",
	Long: `Run a recorded trace through the classifier offline and print every
gesture with its sample timestamp.

Examples:
  momorun classify --trace walk.jsonl.zst`,
	Args: cobra.NoArgs,
	Run:  runClassify,
}

func init() {
	controllerCmd.Flags().StringVar(&flagTrace, "trace", "", "Motion trace to replay (.jsonl.zst)")
	controllerCmd.Flags().StringVar(&flagConnect, "connect", "ws://localhost:8765/ws", "Runner websocket URL")
	controllerCmd.Flags().StringVar(&flagRecord, "record", "", "Also record consumed samples to this trace")
	controllerCmd.Flags().BoolVar(&flagRealtime, "realtime", true, "Pace playback by the recorded timestamps")
	_ = controllerCmd.MarkFlagRequired("trace")

	classifyCmd.Flags().StringVar(&flagTrace, "trace", "", "Motion trace to classify (.jsonl.zst)")
	_ = classifyCmd.MarkFlagRequired("trace")
}

func runController(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, "controller")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var opts []motion.ControllerOption
	if flagRecord != "" {
		tw, err := motion.CreateTrace(flagRecord)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer tw.Close()
		opts = append(opts, motion.WithRecorder(tw))
	}

	ctrl, err := motion.NewController(cfg.Motion.Classifier(), logger, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var tr transport.Transport
	link, err := transport.Dial(ctx, flagConnect, logger)
	if err != nil {
		logger.Warn("runner unreachable, classifying offline", "url", flagConnect, "err", err)
		tr = transport.NewOffline()
	} else {
		tr = link
	}
	defer tr.Close()

	sensor := &motion.TraceSensor{Path: flagTrace, Realtime: flagRealtime}
	stats, err := ctrl.Run(ctx, sensor, tr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("samples: %d  gestures: %d  sent: %d  dropped: %d\n",
		stats.Samples, stats.Gestures, stats.Sent, stats.Dropped)
}

func runClassify(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(flagTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	samples, err := motion.ReadTrace(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	events, err := motion.Classify(cfg.Motion.Classifier(), samples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(events) == 0 {
		fmt.Printf("No gestures in %d samples.\n", len(samples))
		return
	}

	fmt.Printf("  %-10s  %s\n", "Time", "Gesture")
	fmt.Printf("  %-10s  %s\n", "----", "-------")
	for _, e := range events {
		fmt.Printf("  %-10s  %s\n", fmt.Sprintf("%.3fs", e.Timestamp), e.Gesture)
	}
	fmt.Printf("\n%d gestures in %d samples\n", len(events), len(samples))
}
