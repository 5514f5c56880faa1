package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/registry"
	"github.com/vovakirdan/tilesim/internal/sim"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var (
	flagTicks    int
	flagInput    string
	flagFormat   string
	flagProfile  string
	flagLogEvery int
	flagVerbose  bool
	flagSave     bool
	flagPlayer   string
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Run a level headless with scripted input",
	Long: `Advance a level for a fixed number of ticks without a terminal UI and
print the final render buffer and roster.

The input script is a comma separated list of moves (U, D, L, R or . for
no move). It is replayed in a loop, one move per tick.

Examples:
  tilesim run classic --ticks 10 --input R,R,D
  tilesim run garden --ticks 5000 --format yaml
  tilesim run rockfall --ticks 100000 --profile cpu`,
	Args: cobra.ExactArgs(1),
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 100, "Number of ticks to run")
	runCmd.Flags().StringVar(&flagInput, "input", ".", "Comma separated move script, replayed in a loop")
	runCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, yaml")
	runCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile to the working directory: cpu, mem")
	runCmd.Flags().IntVar(&flagLogEvery, "log-every", 0, "Log progress every N ticks at debug level (0 = off)")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the runs database")
	runCmd.Flags().StringVar(&flagPlayer, "player", "headless", "Player name for --save")
}

func runHeadless(_ *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilesim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if flagFormat != "text" && flagFormat != "yaml" {
		return fmt.Errorf("unknown format %q (text, yaml)", flagFormat)
	}
	script, err := parseScript(flagInput)
	if err != nil {
		return err
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	world, err := registry.NewWorld(args[0], s.rules)
	if err != nil {
		return err
	}

	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q (cpu, mem)", flagProfile)
	}

	start := time.Now()
	buf := drive(world, flagTicks, script, logger, flagLogEvery)
	sum := world.Summary()
	logger.Info("run finished",
		"level", args[0],
		"ticks", sum.Tick,
		"entities", sum.Entities,
		"spawned", sum.Spawned,
		"score", sum.Score(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if flagSave {
		if err := saveHeadlessRun(s.dbPath(), args[0], sum); err != nil {
			return err
		}
	}

	report := newRunReport(args[0], world, buf)
	if flagFormat == "yaml" {
		return writeYAML(os.Stdout, report)
	}
	writeText(os.Stdout, report)
	return nil
}

// parseScript turns "R,R,D" into one movement vector per step.
func parseScript(s string) ([]core.Vector2, error) {
	var script []core.Vector2
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		action, ok := core.ParseAction(tok)
		if !ok {
			return nil, fmt.Errorf("unknown move %q in input script", tok)
		}
		frame := core.NewInputFrame()
		frame.Set(action)
		script = append(script, frame.Movement())
	}
	if len(script) == 0 {
		script = append(script, core.Vector2{})
	}
	return script, nil
}

// drive ticks the world n times, cycling through the script, and returns
// the render buffer of the last tick. It stops early once nothing
// controllable is left, unless the world never had anything to control.
func drive(w *sim.World, n int, script []core.Vector2, logger *log.Logger, every int) []uint32 {
	buf := w.Render()
	controlled := w.Summary().Controlled > 0

	for i := range n {
		buf = w.Tick(script[i%len(script)])

		sum := w.Summary()
		if every > 0 && sum.Tick%uint64(every) == 0 {
			logger.Debug("tick", "tick", sum.Tick, "entities", sum.Entities, "dead", sum.Dead, "spawned", sum.Spawned)
		}
		if controlled && sum.Over() {
			logger.Info("nothing left to control", "tick", sum.Tick)
			break
		}
	}
	return buf
}

func saveHeadlessRun(dbPath, levelID string, sum sim.Summary) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	outcome := storage.OutcomeComplete
	if sum.Over() {
		outcome = storage.OutcomeOver
	}
	_, err = store.SaveRun(storage.RunRecord{
		LevelID: levelID,
		Player:  flagPlayer,
		Ticks:   int(sum.Tick),
		Spawned: int(sum.Spawned),
		Score:   sum.Score(),
		Outcome: outcome,
	})
	return err
}

// runReport is the printable result of a headless run.
type runReport struct {
	Level    string         `yaml:"level"`
	Tick     uint64         `yaml:"tick"`
	Score    int            `yaml:"score"`
	Spawned  uint64         `yaml:"spawned"`
	Dead     int            `yaml:"dead"`
	Entities []entityReport `yaml:"entities"`
	Render   [][]uint32     `yaml:"render,flow"`
}

type entityReport struct {
	ID        uint64   `yaml:"id"`
	Team      string   `yaml:"team"`
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Health    uint32   `yaml:"health"`
	MaxHealth uint32   `yaml:"max_health"`
	Dead      bool     `yaml:"dead,omitempty"`
	Behaviors []string `yaml:"behaviors,flow"`
}

func newRunReport(levelID string, w *sim.World, buf []uint32) runReport {
	sum := w.Summary()
	r := runReport{
		Level:   levelID,
		Tick:    sum.Tick,
		Score:   sum.Score(),
		Spawned: sum.Spawned,
		Dead:    sum.Dead,
	}

	roster := w.Entities()
	for i := range roster.Len() {
		id := roster.ID(i)
		st := roster.At(i)
		var behaviors []string
		if e := w.Entity(id); e != nil {
			behaviors = e.Behaviors()
		}
		r.Entities = append(r.Entities, entityReport{
			ID:        uint64(id),
			Team:      st.Team.String(),
			X:         st.Position.X,
			Y:         st.Position.Y,
			Health:    st.Health,
			MaxHealth: st.MaxHealth,
			Dead:      st.Dead,
			Behaviors: behaviors,
		})
	}

	for i := 0; i+sim.ValuesPerDescriptor <= len(buf); i += sim.ValuesPerDescriptor {
		r.Render = append(r.Render, buf[i:i+sim.ValuesPerDescriptor])
	}
	return r
}

func writeYAML(w io.Writer, r runReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, r runReport) {
	fmt.Fprintf(w, "Level %s after %d ticks (score %d, spawned %d, dead %d)\n\n",
		r.Level, r.Tick, r.Score, r.Spawned, r.Dead)

	fmt.Fprintf(w, "  %-4s  %-6s  %-8s  %-12s  %s\n", "ID", "Team", "Position", "Health", "Behaviors")
	for _, e := range r.Entities {
		health := fmt.Sprintf("%d/%d", e.Health, e.MaxHealth)
		if e.Dead {
			health += " dead"
		}
		fmt.Fprintf(w, "  %-4d  %-6s  %-8s  %-12s  %s\n",
			e.ID, e.Team, core.V(e.X, e.Y).String(), health, strings.Join(e.Behaviors, ","))
	}

	fmt.Fprintf(w, "\nRender buffer (%d groups of color, x, y, w, h):\n", len(r.Render))
	for _, g := range r.Render {
		// Raw colour: tinted entities may carry bits above 0xffffff.
		fmt.Fprintf(w, "  %#08x %d %d %d %d\n", g[0], g[1], g[2], g[3], g[4])
	}
}
