// Package sim is the per-tick simulation core: a fixed tile grid, entities
// that own ordered behavior chains, and a tick driver that advances every
// entity once per input vector. This package is UI-agnostic and
// deterministic.
package sim

import "github.com/vovakirdan/tilesim/internal/core"

// EntityID is a stable handle assigned by the World when an entity joins
// the roster. Zero means "not yet in a world".
type EntityID uint64

// Team is the faction an entity belongs to. It never changes after
// construction.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
	TeamFood
	TeamSnake
)

// String returns the string representation of a team.
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	case TeamFood:
		return "food"
	case TeamSnake:
		return "snake"
	default:
		return "unknown"
	}
}

// ParseTeam converts a string to a Team.
// Returns TeamPlayer and false if the string is not recognized.
func ParseTeam(s string) (Team, bool) {
	switch s {
	case "player":
		return TeamPlayer, true
	case "enemy":
		return TeamEnemy, true
	case "food":
		return TeamFood, true
	case "snake":
		return TeamSnake, true
	default:
		return TeamPlayer, false
	}
}

// EntityState is the mutable attribute record behaviors operate on.
//
// DeltaPosition is movement intent for the current tick only; Collision
// consumes it. Dead is terminal but does not remove the entity.
type EntityState struct {
	Position      core.Vector2
	DeltaPosition core.Vector2
	Health        uint32
	MaxHealth     uint32
	BaseColor     core.RGB
	Team          Team
	Dead          bool
}

// Prospective returns where the entity would be if its pending delta were
// committed.
func (s EntityState) Prospective() core.Vector2 {
	return s.Position.Add(s.DeltaPosition)
}

// Alive reports whether the entity still has health and has not been
// marked dead.
func (s EntityState) Alive() bool {
	return !s.Dead && s.Health > 0
}
