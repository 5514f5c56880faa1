package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/platform/tui"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level, or the config's default level.

Controls:
  Arrows/WASD/hjkl - Move
  P/Space          - Pause
  R                - Restart (after game over)
  Esc/B            - Back (while paused or over)
  ?                - More keys
  Q/Ctrl+C         - Quit

Examples:
  tilesim play
  tilesim play garden --difficulty hard
  tilesim play maze --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	levelID := s.cfg.Runtime.Level
	if len(args) == 1 {
		levelID = args[0]
	}

	sc, err := registry.Create(levelID)
	if err != nil {
		return fmt.Errorf("%w (run 'tilesim list' to see available levels)", err)
	}

	store, err := storage.Open(s.dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the world still runs
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(sc, s.rules, store, terminalConfig(s), playerName())
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig(s settings) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: s.tickRate(),
	}
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
