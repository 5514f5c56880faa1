package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the built-in levels plus any registered with --levels.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	if _, err := loadSettings(); err != nil {
		return err
	}

	scenarios := registry.List()
	if len(scenarios) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, sc := range scenarios {
		if len(sc.ID) > maxIDLen {
			maxIDLen = len(sc.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, sc := range scenarios {
		fmt.Printf("  %-*s  %s\n", maxIDLen, sc.ID, sc.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tilesim play <id>' to play a level.")
	return nil
}
