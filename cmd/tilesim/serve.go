package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tilesim SSH server",
	Long: `Start an SSH server that lets users connect and play levels.

Each SSH connection gets its own world with a level picker menu.
Runs are stored per-server (all users share the same run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tilesim/host_key

Examples:
  tilesim serve                           # Listen on :23234 with auto-generated key
  tilesim serve --ssh :2222               # Listen on port 2222
  tilesim serve --host-key ./my_host_key  # Use specific host key
  tilesim serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = s.dbPath()
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = s.tickRate()
	cfg.Rules = s.rules

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting tilesim SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
