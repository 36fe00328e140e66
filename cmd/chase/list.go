package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chase/internal/games/chase"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scenarios",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := chase.Scenarios()

	maxIDLen := len("ID")
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Println("Available scenarios:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, s := range scenarios {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}
	fmt.Println()
	fmt.Println("Run 'chase play <id>' to play a scenario.")
}
