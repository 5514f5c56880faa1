package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or validate level files",
}

var levelsListCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List the valid levels in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		lvls, err := levels.NewLoader(args[0]).LoadAll()
		if err != nil {
			return err
		}
		if len(lvls) == 0 {
			fmt.Println("No levels found.")
			return nil
		}
		for _, lvl := range lvls {
			fmt.Printf("  %-16s %-24s %dx%d  %d entities\n",
				lvl.ID, lvl.Name, lvl.Width, lvl.Height, len(lvl.Entities))
		}
		return nil
	},
}

var errInvalidLevels = errors.New("some level files are invalid")

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check that every level file in a directory parses and builds",
	Long: `Parse every .yaml/.yml file under the directory and build its world
with the configured rules. Exits non-zero if any file fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		results, err := levels.NewLoader(args[0]).Check(s.rules)
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("  FAIL  %s: %v\n", r.Path, r.Err)
				continue
			}
			fmt.Printf("  ok    %s (%s)\n", r.Path, r.ID)
		}
		fmt.Printf("\n%d files, %d failed\n", len(results), failed)

		if failed > 0 {
			return errInvalidLevels
		}
		return nil
	},
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
}
