package sim

import "github.com/vovakirdan/tilesim/internal/core"

// Entity is one roster member: a state record and the behavior chain that
// drives it. The chain is fixed at construction.
type Entity struct {
	id        EntityID
	state     EntityState
	behaviors []Behavior
}

// NewEntity creates an entity with no pending movement.
func NewEntity(pos core.Vector2, health, maxHealth uint32, color core.RGB, team Team, behaviors ...Behavior) *Entity {
	return &Entity{
		state: EntityState{
			Position:  pos,
			Health:    health,
			MaxHealth: maxHealth,
			BaseColor: color,
			Team:      team,
		},
		behaviors: behaviors,
	}
}

func (e *Entity) ID() EntityID { return e.id }

func (e *Entity) State() EntityState { return e.state }

func (e *Entity) Position() core.Vector2 { return e.state.Position }

// Behaviors returns the chain's behavior names in order.
func (e *Entity) Behaviors() []string {
	names := make([]string, len(e.behaviors))
	for i, b := range e.behaviors {
		names[i] = b.Name()
	}
	return names
}

// HasBehavior reports whether the chain contains a behavior with name.
func (e *Entity) HasBehavior(name string) bool {
	for _, b := range e.behaviors {
		if b.Name() == name {
			return true
		}
	}
	return false
}

// Process runs the chain in order against the entity's own state and
// returns everything the chain spawned.
func (e *Entity) Process(input core.Vector2, grid *Grid, roster Snapshot) []*Entity {
	var spawned []*Entity
	for _, b := range e.behaviors {
		for _, s := range b.Process(input, &e.state, grid, roster) {
			if s != nil {
				spawned = append(spawned, s)
			}
		}
	}
	return spawned
}

// Draw returns the entity's render descriptor. Coordinates are converted
// to unsigned pixel space with wraparound, so an off-grid entity yields
// large values rather than failing.
func (e *Entity) Draw() Descriptor {
	return Descriptor{
		Color: core.Tint(e.state.BaseColor, e.state.Health, e.state.MaxHealth),
		X:     uint32(e.state.Position.X) * TileSize,
		Y:     uint32(e.state.Position.Y) * TileSize,
		W:     TileSize,
		H:     TileSize,
	}
}

// Clone returns a deep copy: state is copied and every behavior is cloned
// so private counters diverge independently.
func (e *Entity) Clone() *Entity {
	cp := &Entity{id: e.id, state: e.state, behaviors: make([]Behavior, len(e.behaviors))}
	for i, b := range e.behaviors {
		cp.behaviors[i] = b.Clone()
	}
	return cp
}
