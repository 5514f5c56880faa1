package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sim"
	"github.com/vovakirdan/tilesim/internal/storage"
)

// hudHeight is the number of rows reserved above the grid. The help bar
// takes one more row below the screen buffer.
const hudHeight = 2

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one world.
type Model struct {
	scenario   registry.Scenario
	rules      sim.Rules
	world      *sim.World
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	inputFrame core.InputFrame
	state      core.RunState
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been recorded
	controlled bool // Whether the world started with anything to steer
}

// NewModel creates a model with a fresh world from the scenario.
func NewModel(sc registry.Scenario, rules sim.Rules, store *storage.Store, cfg core.RuntimeConfig, player string) (Model, error) {
	world, err := sc.NewWorld(rules)
	if err != nil {
		return Model{}, fmt.Errorf("building %s: %w", sc.ID(), err)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		controlled: world.Summary().Controlled > 0,
		scenario:   sc,
		rules:      rules,
		world:      world,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		store:      store,
		config:     cfg,
		player:     player,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	keys := m.keyMapper.Keys()
	if key.Matches(msg, keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && (m.state.GameOver || m.state.Paused):
		m.saveRun(storage.OutcomeQuit)
		m.backToMenu = true
		return m, nil
	case action == core.ActionPause:
		if !m.state.GameOver {
			m.state.Paused = !m.state.Paused
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick advances the world one step with the buffered input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.state.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	if !m.state.Paused && !m.state.GameOver {
		m.world.Process(m.inputFrame.Movement())
		m.syncState()
		if m.state.GameOver {
			m.saveRun(storage.OutcomeOver)
		}
	}

	// Clear input for next tick
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// syncState copies the world summary into the run state.
func (m *Model) syncState() {
	sum := m.world.Summary()
	m.state.Tick = sum.Tick
	m.state.Score = sum.Score()
	// Worlds with nothing to steer run until the user leaves.
	m.state.GameOver = m.controlled && sum.Over()
}

// restart replaces the world with a fresh one from the same scenario.
func (m *Model) restart() {
	world, err := m.scenario.NewWorld(m.rules)
	if err != nil {
		return
	}
	m.world = world
	m.controlled = world.Summary().Controlled > 0
	m.state = core.RunState{}
	m.runSaved = false
	m.inputFrame.Clear()
}

// saveRun records the current run once. Runs that never ticked are not
// recorded.
func (m *Model) saveRun(outcome string) {
	if m.runSaved || m.state.Tick == 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}
	sum := m.world.Summary()
	//nolint:errcheck // Best-effort save, the session continues regardless
	m.store.SaveRun(storage.RunRecord{
		LevelID: m.scenario.ID(),
		Player:  m.player,
		Ticks:   int(sum.Tick),
		Spawned: int(sum.Spawned),
		Score:   sum.Score(),
		Outcome: outcome,
	})
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".tilesim", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scenario.ID(), timestamp))

	//nolint:errcheck // Best-effort save
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw paints the HUD, the world and any overlay into the screen buffer.
func (m *Model) draw() {
	s := m.screen
	s.Clear()

	sum := m.world.Summary()
	hud := fmt.Sprintf("%s  tick %d  entities %d  score %d",
		m.scenario.Title(), sum.Tick, sum.Entities, sum.Score())
	if sum.PlayerMaxHealth > 0 {
		hud += fmt.Sprintf("  hp %d/%d", sum.PlayerHealth, sum.PlayerMaxHealth)
	}
	s.DrawText(0, 0, hud)

	gw, gh := GridSize(m.world.Grid())
	originX := max(0, (s.Width()-gw)/2)
	originY := hudHeight + max(0, (s.Height()-hudHeight-gh)/2)
	PaintDescriptors(s, m.world.Descriptors(), originX, originY)

	switch {
	case m.state.GameOver:
		m.drawOverlay(originY+gh/2, "GAME OVER", fmt.Sprintf("score %d  r: restart  esc: menu", m.state.Score))
	case m.state.Paused:
		m.drawOverlay(originY+gh/2, "PAUSED", "p: resume  esc: menu")
	}
}

func (m *Model) drawOverlay(y int, title, detail string) {
	w := max(len(title), len(detail)) + 4
	x := (m.screen.Width() - w) / 2
	m.screen.DrawBox(x, y-2, w, 4)
	m.screen.DrawTextCentered(y-1, title)
	m.screen.DrawTextCentered(y, detail)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// World returns the world being driven.
func (m Model) World() *sim.World { return m.world }

// State returns the current run state.
func (m Model) State() core.RunState { return m.state }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run starts the Bubble Tea program for one scenario.
func Run(sc registry.Scenario, rules sim.Rules, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model, err := NewModel(sc, rules, store, cfg, player)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
