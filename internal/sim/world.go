package sim

import "github.com/vovakirdan/tilesim/internal/core"

// World is the tick driver: it owns the grid and the roster and advances
// every entity once per Process call.
//
// World is single-threaded and deterministic. Given the same grid, roster
// and input sequence, two worlds produce identical render output.
type World struct {
	grid     *Grid
	entities []*Entity
	nextID   EntityID
	tick     uint64
	spawned  uint64
}

// NewWorld creates a world over grid with the given initial roster.
func NewWorld(grid *Grid, entities ...*Entity) *World {
	w := &World{grid: grid}
	for _, e := range entities {
		w.Add(e)
	}
	return w
}

// Add appends an entity to the roster and assigns its ID.
func (w *World) Add(e *Entity) EntityID {
	w.nextID++
	e.id = w.nextID
	w.entities = append(w.entities, e)
	return e.id
}

// Grid returns the world's grid.
func (w *World) Grid() *Grid { return w.grid }

// TickCount returns the number of completed Process calls.
func (w *World) TickCount() uint64 { return w.tick }

// SpawnedCount returns how many entities behaviors have spawned so far.
func (w *World) SpawnedCount() uint64 { return w.spawned }

// Len returns the roster size.
func (w *World) Len() int { return len(w.entities) }

// Process advances the simulation one tick.
//
// The roster is snapshotted first, so every behavior sees pre-tick
// states. Entities run in roster order; spawned entities are appended
// after all existing ones and do not run until the next tick.
func (w *World) Process(input core.Vector2) {
	roster := NewSnapshot(w.entities)
	var pending []*Entity
	for _, e := range w.entities {
		pending = append(pending, e.Process(input, w.grid, roster)...)
	}
	for _, e := range pending {
		w.Add(e)
	}
	w.spawned += uint64(len(pending))
	w.tick++
}

// Descriptors returns grid descriptors followed by one per entity in
// roster order.
func (w *World) Descriptors() []Descriptor {
	out := w.grid.RenderDescriptors()
	for _, e := range w.entities {
		out = append(out, e.Draw())
	}
	return out
}

// Render returns the flattened render buffer.
func (w *World) Render() []uint32 {
	return Flatten(w.Descriptors())
}

// Tick processes one input and returns the resulting render buffer.
func (w *World) Tick(input core.Vector2) []uint32 {
	w.Process(input)
	return w.Render()
}

// Entities returns a read-only snapshot of the roster.
func (w *World) Entities() Snapshot {
	return NewSnapshot(w.entities)
}

// Entity returns the entity with id, or nil.
func (w *World) Entity(id EntityID) *Entity {
	for _, e := range w.entities {
		if e.id == id {
			return e
		}
	}
	return nil
}

// EntitiesAt returns the states of all entities standing on pos, in
// roster order.
func (w *World) EntitiesAt(pos core.Vector2) []EntityState {
	var out []EntityState
	for _, e := range w.entities {
		if e.state.Position == pos {
			out = append(out, e.state)
		}
	}
	return out
}

// Clone returns an independent deep copy of the world. The grid is shared
// since it is immutable.
func (w *World) Clone() *World {
	cp := &World{
		grid:     w.grid,
		entities: make([]*Entity, len(w.entities)),
		nextID:   w.nextID,
		tick:     w.tick,
		spawned:  w.spawned,
	}
	for i, e := range w.entities {
		cp.entities[i] = e.Clone()
	}
	return cp
}

// Summary is a roll-up of roster state for HUDs and reports. Controlled
// counts living entities that follow input; the player fields cover
// living player-team entities only.
type Summary struct {
	Tick            uint64
	Entities        int
	Dead            int
	Spawned         uint64
	Controlled      int
	PlayersAlive    int
	PlayerHealth    uint32
	PlayerMaxHealth uint32
}

// Summary computes a roll-up of the current roster.
func (w *World) Summary() Summary {
	s := Summary{Tick: w.tick, Entities: len(w.entities), Spawned: w.spawned}
	for _, e := range w.entities {
		st := e.state
		if st.Dead {
			s.Dead++
		}
		if !st.Alive() {
			continue
		}
		if e.HasBehavior(BehaviorInput) {
			s.Controlled++
		}
		if st.Team == TeamPlayer {
			s.PlayersAlive++
			s.PlayerHealth += st.Health
			s.PlayerMaxHealth += st.MaxHealth
		}
	}
	return s
}

// Score is ticks survived plus ten points per spawned entity.
func (s Summary) Score() int {
	return int(s.Tick) + 10*int(s.Spawned)
}

// Over reports whether nothing controllable is left alive.
func (s Summary) Over() bool {
	return s.Controlled == 0
}
