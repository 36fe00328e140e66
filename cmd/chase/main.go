// chase is a terminal chase game: steer through a walled board, collect
// the $ and keep away from the enemies homing in on you.
//
// Usage:
//
//	chase list                  - List scenarios
//	chase play <scenario>       - Play a scenario
//	chase play --load <file>    - Resume a saved game
//	chase menu                  - Pick scenarios interactively
//	chase scores <scenario>     - Show the best runs
//	chase serve                 - Start the SSH server
//	chase config [scenario]     - Print the effective config as YAML
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Run database (default: ~/.chase/runs.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--tick <duration>     - Override the update interval
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-chase/internal/core"
	_ "github.com/vovakirdan/tui-chase/internal/games/chase" // registers the scenarios
	"github.com/vovakirdan/tui-chase/internal/storage"
)

var (
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagTick       time.Duration
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "chase",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chase",
	Short: "Chase - collect the $ and outrun the enemies",
	Long: `Chase is a terminal game on a walled board. Steer the arrow, pick up
the $ for points and keep away from the X enemies that home in on you.
Every enemy touching you costs one health per tick.

Available commands:
  list     - Show all scenarios
  play     - Play a scenario directly
  menu     - Interactive scenario picker
  scores   - View the best runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  chase list
  chase play classic
  chase play swarm --difficulty hard
  chase play --load ~/.chase/saves/maze_20240501-120000.yaml
  chase serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.chase/runs.db", "Path to run database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.DurationVar(&flagTick, "tick", 0, "Update interval override, e.g. 30ms (0 = from config)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the game config from the global flags, sized to the
// terminal when stdout is one.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	cfg.TickInterval = flagTick
	return cfg
}

// openStore opens the run database; runs are not recorded when it fails.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database, runs will not be recorded", "error", err)
		return nil
	}
	return store
}
