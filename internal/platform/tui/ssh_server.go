// Package tui provides terminal UI components including SSH server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sim"
	"github.com/vovakirdan/tilesim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tilesim/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Rules are handed to every world the server builds.
	Rules sim.Rules
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tilesim/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Rules:       sim.DefaultRules(),
	}
}

// SSHServer wraps a Wish SSH server. Every session gets its own world;
// sessions share nothing but the runs database.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilesim-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tilesim", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	// Create session model that handles menu + world flow
	model := NewSessionModel(s.store, cfg, s.config.Rules, sshSession.User())
	model.logger = s.logger.With("user", sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full session flow: menu -> world -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	rules    sim.Rules
	username string
	logger   *log.Logger
	menu     MenuModel
	board    ScoreboardModel
	game     *Model
	inGame   bool
	inBoard  bool
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, rules sim.Rules, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		rules:    rules,
		username: username,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.inGame && m.game != nil:
		return m.updateGame(msg)
	case m.inBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// Check if user quit
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The menu quits its own program to hand over; here the session
	// swaps models instead.
	if m.menu.WantsScoreboard() {
		m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.inBoard = true
		return m, m.board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		sc, err := registry.Create(selected.ScenarioID)
		if err != nil {
			// Shouldn't happen since menu only shows registered scenarios
			return m, nil
		}

		m.config = m.menu.Config() // Get possibly updated config from resize

		game, err := NewModel(sc, m.rules, m.store, m.config, m.username)
		if err != nil {
			m.logger.Error("cannot build world", "level", sc.ID(), "error", err)
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		m.logger.Info("level started", "level", sc.ID())
		m.game = &game
		m.inGame = true

		return m, m.game.Init()
	}

	return m, cmd
}

// updateBoard handles updates when the scoreboard is showing.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.inBoard = false
		m.menu = NewMenuModel(m.store, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateGame handles updates when in world mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.game.Update(msg)
	if game, ok := newModel.(Model); ok {
		m.game = &game
	}

	// Check if user left the level (back to menu)
	if m.game.BackToMenu() {
		m.logger.Info("level left", "ticks", m.game.State().Tick, "score", m.game.State().Score)
		m.inGame = false
		m.game = nil
		m.menu = NewMenuModel(m.store, m.config)
		return m, m.menu.Init()
	}

	// Check if user quit entirely
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.game != nil {
		return m.game.View()
	}
	if m.inBoard {
		return m.board.View()
	}

	return m.menu.View()
}
