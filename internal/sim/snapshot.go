package sim

import "iter"

// Snapshot is a read-only copy of roster states taken at the start of a
// tick. Behaviors see every entity as it was before the tick began.
type Snapshot struct {
	ids    []EntityID
	states []EntityState
}

// NewSnapshot copies the states of entities in order.
func NewSnapshot(entities []*Entity) Snapshot {
	s := Snapshot{
		ids:    make([]EntityID, len(entities)),
		states: make([]EntityState, len(entities)),
	}
	for i, e := range entities {
		s.ids[i] = e.id
		s.states[i] = e.state
	}
	return s
}

// Len returns the number of entities.
func (s Snapshot) Len() int { return len(s.states) }

// At returns the i-th state.
func (s Snapshot) At(i int) EntityState { return s.states[i] }

// ID returns the i-th entity's ID.
func (s Snapshot) ID(i int) EntityID { return s.ids[i] }

// All iterates states in roster order.
func (s Snapshot) All() iter.Seq[EntityState] {
	return func(yield func(EntityState) bool) {
		for _, st := range s.states {
			if !yield(st) {
				return
			}
		}
	}
}

// Equal returns true if both snapshots hold the same IDs and states in the
// same order.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.states) != len(other.states) {
		return false
	}
	for i := range s.states {
		if s.ids[i] != other.ids[i] || s.states[i] != other.states[i] {
			return false
		}
	}
	return true
}
