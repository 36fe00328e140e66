package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chase/internal/games/chase"
	"github.com/vovakirdan/tui-chase/internal/games/chase/savefile"
	"github.com/vovakirdan/tui-chase/internal/platform/tui"
	"github.com/vovakirdan/tui-chase/internal/registry"
)

var (
	flagLoad    string
	flagSaveDir string
)

var playCmd = &cobra.Command{
	Use:   "play [scenario]",
	Short: "Play a scenario",
	Long: `Start playing the given scenario, or resume a saved game with --load.

Controls:
  A/Left     - Turn left 45°
  D/Right    - Turn right 45°
  W/Up       - Speed up
  S/Down     - Slow down
  P/Space    - Pause
  Ctrl+S     - Save the game
  Q/Ctrl+C   - Quit

Examples:
  chase play classic
  chase play maze --difficulty easy --seed 42
  chase play --load ~/.chase/saves/classic_20240501-120000.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume a game saved with Ctrl+S")
	playCmd.Flags().StringVar(&flagSaveDir, "save-dir", "", "Directory for Ctrl+S saves (default ~/.chase/saves)")
}

func runPlay(_ *cobra.Command, args []string) error {
	if flagLoad == "" && len(args) == 0 {
		return errors.New("name a scenario or pass --load; run 'chase list' to see scenarios")
	}

	saveDir := flagSaveDir
	if saveDir == "" {
		dir, err := savefile.DefaultDir()
		if err != nil {
			logger.Warn("saving disabled", "error", err)
		}
		saveDir = dir
	}

	cfg := runtimeConfig()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var (
		result tui.RunResult
		err    error
	)
	if flagLoad != "" {
		game, loadErr := chase.LoadFile(flagLoad, nil)
		if loadErr != nil {
			return loadErr
		}
		if st := game.Status(); st != chase.StatusRunning {
			return fmt.Errorf("save %s has already ended (%s)", flagLoad, st)
		}
		logger.Debug("resuming", "file", flagLoad, "scenario", game.ID(), "tick", game.Ticks())
		result, err = tui.RunResumed(game, store, cfg, saveDir)
	} else {
		id := args[0]
		if !registry.Exists(id) {
			return fmt.Errorf("unknown scenario %q; run 'chase list' to see scenarios", id)
		}
		game, createErr := registry.Create(id)
		if createErr != nil {
			return createErr
		}
		result, err = tui.Run(game, store, cfg, saveDir)
	}
	if err != nil {
		return err
	}

	if result.Finished() {
		fmt.Println(result.Line())
	}
	if result.Err != nil {
		logger.Error("run stopped", "scenario", result.Scenario, "error", result.Err)
	}
	return nil
}
