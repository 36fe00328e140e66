package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chase/internal/games/chase/savefile"
	"github.com/vovakirdan/tui-chase/internal/platform/tui"
	"github.com/vovakirdan/tui-chase/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios from an interactive menu",
	Long: `Start in interactive menu mode. After a run ends you return to the menu.

Controls:
  Up/Down/j/k   - Navigate
  Left/Right    - Change difficulty
  Enter/Space   - Play
  Tab           - Best runs
  Q             - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	saveDir, err := savefile.DefaultDir()
	if err != nil {
		logger.Warn("saving disabled", "error", err)
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			return err
		}

		runCfg := cfg
		if runCfg.Seed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		result, err := tui.Run(game, store, runCfg, saveDir)
		if err != nil {
			logger.Error("cannot run scenario", "scenario", res.GameID, "error", err)
			continue
		}
		logger.Debug("run finished", "scenario", result.Scenario, "outcome", result.Outcome, "score", result.Score)
		if result.Finished() {
			fmt.Println(result.Line())
		}
	}
}
