package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/platform/tui"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded runs",
	Long: `Display the best runs for a level, or the most recent runs across all
levels when no level is given.

Examples:
  tilesim scores classic
  tilesim scores --limit 25
  tilesim scores garden --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs instead of showing them")
}

func runScores(_ *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	levelID := ""
	title := "Recent runs"
	if len(args) == 1 {
		levelID = args[0]
		sc, err := registry.Create(levelID)
		if err != nil {
			return fmt.Errorf("%w (run 'tilesim list' to see available levels)", err)
		}
		title = "Best runs - " + sc.Title()
	}

	store, err := storage.Open(s.dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Println("Runs cleared.")
		return nil
	}

	var runs []storage.RunRecord
	if levelID == "" {
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopRuns(levelID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	t := table.New(
		table.WithColumns(tui.RunColumns()),
		table.WithRows(tui.RunRows(runs)),
		table.WithHeight(len(runs)+1),
	)
	// Static output: no row highlight.
	styles := table.DefaultStyles()
	styles.Selected = styles.Cell
	t.SetStyles(styles)
	t.Blur()
	fmt.Println(t.View())

	if levelID != "" {
		if best, err := store.BestScore(levelID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
	}
	return nil
}
