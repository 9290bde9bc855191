package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/momorun/internal/platform/tui"
	"github.com/vovakirdan/momorun/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display the best runs. On a terminal this opens an interactive table;
when piped, or with --plain, it prints text.

Examples:
  momorun scores
  momorun scores --plain --limit 5
  momorun scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text even on a terminal")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole run history")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printRuns(store)
}

func printRuns(store *storage.Store) {
	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Run History - MomoRun")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'momorun play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-7s  %s\n", "Rank", "Score", "Time", "Cleared", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-7s  %s\n", "----", "-----", "----", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-8s  %-7d  %s\n",
			i+1, r.Score, fmt.Sprintf("%.1fs", r.Duration), r.ObstaclesCleared,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Avg: %.1f\n", stats.HighScore, stats.Runs, stats.AvgScore)
	}
}
