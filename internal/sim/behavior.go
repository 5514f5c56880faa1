package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tilesim/internal/core"
)

// ErrUnknownBehavior is returned by NewBehavior for names it does not know.
var ErrUnknownBehavior = errors.New("sim: unknown behavior")

// Behavior is one step of an entity's per-tick chain.
//
// Process may mutate state and may return newly spawned entities. It must
// not touch the roster; roster is a read-only copy taken before the tick.
// Clone returns an independent copy including private counters.
type Behavior interface {
	Name() string
	Process(input core.Vector2, state *EntityState, grid *Grid, roster Snapshot) []*Entity
	Clone() Behavior
}

// Behavior names accepted by NewBehavior.
const (
	BehaviorInput     = "input"
	BehaviorCollision = "collision"
	BehaviorCombat    = "combat"
	BehaviorGravity   = "gravity"
	BehaviorSpawn     = "spawn"
)

var behaviorFactories = map[string]func(Rules) Behavior{
	BehaviorInput:     func(Rules) Behavior { return NewInput() },
	BehaviorCollision: func(Rules) Behavior { return NewCollision() },
	BehaviorCombat:    func(Rules) Behavior { return NewCombat() },
	BehaviorGravity:   func(r Rules) Behavior { return NewGravity(r.FallTime) },
	BehaviorSpawn:     func(r Rules) Behavior { return NewSpawnOnContact(r) },
}

// NewBehavior creates a behavior by name.
func NewBehavior(name string, rules Rules) (Behavior, error) {
	f, ok := behaviorFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBehavior, name)
	}
	return f(rules), nil
}

// BehaviorNames returns all names NewBehavior accepts, sorted.
func BehaviorNames() []string {
	names := make([]string, 0, len(behaviorFactories))
	for name := range behaviorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Input copies the tick's input vector into the movement intent.
type Input struct{}

func NewInput() *Input { return &Input{} }

func (*Input) Name() string { return BehaviorInput }

func (*Input) Process(input core.Vector2, state *EntityState, _ *Grid, _ Snapshot) []*Entity {
	state.DeltaPosition = input
	return nil
}

func (*Input) Clone() Behavior { return &Input{} }

// Collision commits movement onto passable tiles and always clears the
// intent.
type Collision struct{}

func NewCollision() *Collision { return &Collision{} }

func (*Collision) Name() string { return BehaviorCollision }

func (*Collision) Process(_ core.Vector2, state *EntityState, grid *Grid, _ Snapshot) []*Entity {
	target := state.Prospective()
	if grid.Passable(target) {
		state.Position = target
	}
	state.DeltaPosition = core.Vector2{}
	return nil
}

func (*Collision) Clone() Behavior { return &Collision{} }

// Combat resolves moving into hostile entities.
//
// An entity at zero health is marked dead and stops. Otherwise every
// living entity of another team standing on the prospective tile deals
// one point of damage and cancels the move, for as long as health remains.
// Several hostiles on one tile deal several hits in the same tick.
type Combat struct{}

func NewCombat() *Combat { return &Combat{} }

func (*Combat) Name() string { return BehaviorCombat }

func (*Combat) Process(_ core.Vector2, state *EntityState, _ *Grid, roster Snapshot) []*Entity {
	if state.Health == 0 {
		state.Dead = true
		state.DeltaPosition = core.Vector2{}
		return nil
	}
	target := state.Prospective()
	for other := range roster.All() {
		if state.Health == 0 {
			break
		}
		if other.Team != state.Team && other.Health > 0 && other.Position == target {
			state.Health--
			state.DeltaPosition = core.Vector2{}
		}
	}
	return nil
}

func (*Combat) Clone() Behavior { return &Combat{} }

// Gravity adds one tile of downward intent every FallTime+1 ticks.
type Gravity struct {
	fallTime uint32
	ticker   uint32
}

func NewGravity(fallTime uint32) *Gravity { return &Gravity{fallTime: fallTime} }

func (*Gravity) Name() string { return BehaviorGravity }

func (g *Gravity) Process(_ core.Vector2, state *EntityState, _ *Grid, _ Snapshot) []*Entity {
	g.ticker++
	if g.ticker > g.fallTime {
		state.DeltaPosition.Y++
		g.ticker = 0
	}
	return nil
}

func (g *Gravity) Clone() Behavior {
	cp := *g
	return &cp
}

// Ticker returns ticks since the last pull.
func (g *Gravity) Ticker() uint32 { return g.ticker }

// SpawnOnContact grows a snake body segment on food the entity touches.
//
// The cooldown counts up every tick to the cap. When food is within one
// tile and the cooldown exceeds the threshold, a new snake segment is
// spawned on the food's tile and the cooldown resets.
type SpawnOnContact struct {
	rules    Rules
	cooldown uint32
}

func NewSpawnOnContact(rules Rules) *SpawnOnContact {
	return &SpawnOnContact{rules: rules}
}

func (*SpawnOnContact) Name() string { return BehaviorSpawn }

func (s *SpawnOnContact) Process(_ core.Vector2, state *EntityState, _ *Grid, roster Snapshot) []*Entity {
	if s.cooldown < s.rules.CooldownCap {
		s.cooldown++
	}
	for other := range roster.All() {
		if other.Team != TeamFood || !other.Position.WithinOneOf(state.Position) {
			continue
		}
		if s.cooldown > s.rules.SpawnCooldown {
			s.cooldown = 0
			return []*Entity{NewSnake(other.Position, s.rules)}
		}
	}
	return nil
}

func (s *SpawnOnContact) Clone() Behavior {
	cp := *s
	return &cp
}

// Cooldown returns the current cooldown counter.
func (s *SpawnOnContact) Cooldown() uint32 { return s.cooldown }
