package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chase/internal/config"
	"github.com/vovakirdan/tui-chase/internal/games/chase"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config [scenario]",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a scenario would start with after the config
file, the difficulty preset and the scenario's own tuning are applied.

Save the output to ~/.chase/configs/chase.yaml to make it the default.

Examples:
  chase config
  chase config maze --difficulty hard
  chase config --defaults > ~/.chase/configs/chase.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, args []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	id := "classic"
	if len(args) == 1 {
		id = args[0]
	}
	scenario, ok := chase.LookupScenario(id)
	if !ok {
		return fmt.Errorf("unknown scenario %q; run 'chase list' to see scenarios", id)
	}

	cfg, err := scenario.Config(runtimeConfig())
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
