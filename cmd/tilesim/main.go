// tilesim drives grid worlds in the terminal, headless or over SSH.
//
// Usage:
//
//	tilesim list               - List available levels
//	tilesim play [level]       - Play a level
//	tilesim menu               - Pick levels interactively
//	tilesim run <level>        - Run a level headless with scripted input
//	tilesim serve              - Start SSH server for remote play
//	tilesim scores [level]     - Show recorded runs
//	tilesim levels <cmd> <dir> - List or validate level files
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default from config: 30)
//	--db <path>           - Set database path (default: ~/.tilesim/runs.db)
//	--config <path>       - Load a custom config YAML
//	--difficulty <preset> - easy, normal or hard
//	--levels <dir>        - Register extra level files
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/config"
	"github.com/vovakirdan/tilesim/internal/levels"
	"github.com/vovakirdan/tilesim/internal/sim"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilesim",
	Short: "tilesim - tick-driven grid worlds in your terminal",
	Long: `tilesim runs small grid worlds one tick at a time: a player walks a
walled map, enemies bite back, snakes grow next to food.

Available commands:
  list     - Show all available levels
  play     - Play a level directly
  menu     - Interactive level picker
  run      - Run a level headless with scripted input
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  levels   - List or validate level files

Examples:
  tilesim list
  tilesim play classic
  tilesim run garden --ticks 500 --input R,R,D,L
  tilesim serve --ssh :2222
  tilesim scores classic`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (ticks per second, 0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (empty = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of extra level files to register")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// settings is the resolved configuration shared by all commands.
type settings struct {
	cfg   config.Config
	rules sim.Rules
}

func (s settings) tickRate() int {
	if flagFPS > 0 {
		return flagFPS
	}
	return s.cfg.Runtime.TickRate
}

func (s settings) dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return s.cfg.Runtime.DBPath
}

// loadSettings loads the config, applies the difficulty preset and
// registers any extra level directory.
func loadSettings() (settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}

	if flagDifficulty != "" {
		preset, ok := config.ParseDifficulty(flagDifficulty)
		if !ok {
			return settings{}, fmt.Errorf("unknown difficulty %q (easy, normal, hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	rules, err := cfg.SimRules()
	if err != nil {
		return settings{}, err
	}

	if flagLevelsDir != "" {
		if _, err := levels.RegisterDir(flagLevelsDir); err != nil {
			return settings{}, err
		}
	}

	return settings{cfg: cfg, rules: rules}, nil
}
