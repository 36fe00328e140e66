package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chase/internal/registry"
	"github.com/vovakirdan/tui-chase/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <scenario>",
	Short: "Show the best runs of a scenario",
	Long: `Display the best runs recorded for a scenario: highest score first,
the shorter run winning ties.

Examples:
  chase scores classic
  chase scores maze --limit 20
  chase scores swarm --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scenario's run history")
}

func runScores(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown scenario %q; run 'chase list' to see scenarios", id)
	}

	store := openStore()
	if store == nil {
		return errors.New("run database unavailable")
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		logger.Info("cleared run history", "scenario", id)
		return nil
	}

	runs, err := store.TopRuns(id, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n\n", id)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Printf("\nPlay 'chase play %s' to set the first score!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-10s  %s\n", "Rank", "Score", "Ticks", "Outcome", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-10s  %s\n", "----", "-----", "-----", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-8d  %-10s  %s\n",
			i+1, r.Score, r.Ticks, r.Outcome, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(id)
	if err != nil {
		return err
	}
	printStats(stats)
	return nil
}

func printStats(s *storage.RunStats) {
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Longest: %d ticks\n",
		s.RunsCount, s.HighScore, s.AvgScore, s.LongestRun)
}
