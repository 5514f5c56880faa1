package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/platform/tui"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
When you leave a level, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Best runs
  Q            - Quit

Examples:
  tilesim menu
  tilesim menu --fps 15
  tilesim menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := storage.Open(s.dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig(s)
	player := playerName()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if menuResult.ScenarioID == "" {
			return nil
		}

		sc, err := registry.Create(menuResult.ScenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if err := tui.Run(sc, s.rules, store, cfg, player); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
