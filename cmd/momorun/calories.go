package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/momorun/internal/storage"
)

var (
	flagTarget float64
	flagAdd    float64
	flagReset  bool
)

var caloriesCmd = &cobra.Command{
	Use:   "calories",
	Short: "Show or change the daily calorie ledger",
	Long: `Show today's burned calories against the daily target. Today's total
resets automatically on the first use of a new day.

Examples:
  momorun calories
  momorun calories --target 600
  momorun calories --add 42.5
  momorun calories --reset`,
	Args: cobra.NoArgs,
	Run:  runCalories,
}

func init() {
	caloriesCmd.Flags().Float64Var(&flagTarget, "target", 0, "Set the daily calorie target")
	caloriesCmd.Flags().Float64Var(&flagAdd, "add", 0, "Add burned calories to today")
	caloriesCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget the target and today's calories")
}

func runCalories(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fail := func(err error) {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagReset {
		if err := store.ResetLedger(); err != nil {
			fail(err)
		}
	}
	if cmd.Flags().Changed("target") {
		if _, err := store.SetTarget(flagTarget); err != nil {
			fail(err)
		}
	}
	if cmd.Flags().Changed("add") {
		if _, err := store.AddCalories(flagAdd); err != nil {
			fail(err)
		}
	}

	l, err := store.Ledger()
	if err != nil {
		fail(err)
	}

	fmt.Printf("Today:  %.1f kcal\n", l.TodayCalories)
	if !l.TargetSet() {
		fmt.Println("Target: not set (use --target)")
		return
	}
	fmt.Printf("Target: %.0f kcal (%.0f%%)\n", l.DailyTarget, l.Progress()*100)
}
