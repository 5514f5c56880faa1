package sim

import "github.com/vovakirdan/tilesim/internal/core"

// Prefab holds the starting vitals and colour of a prefab entity.
type Prefab struct {
	Health    uint32
	MaxHealth uint32
	Color     core.RGB
}

// Rules are the tunables behaviors and prefabs read at construction.
type Rules struct {
	// FallTime is how many ticks Gravity waits before pulling one tile down.
	FallTime uint32

	// SpawnCooldown must be exceeded before SpawnOnContact fires again.
	SpawnCooldown uint32

	// CooldownCap bounds the SpawnOnContact counter.
	CooldownCap uint32

	Player Prefab
	Enemy  Prefab
	Food   Prefab
	Snake  Prefab
}

// DefaultRules returns the stock tunables.
func DefaultRules() Rules {
	return Rules{
		FallTime:      30,
		SpawnCooldown: 100,
		CooldownCap:   10000,
		Player:        Prefab{Health: 10, MaxHealth: 10, Color: core.ColorPlayer},
		Enemy:         Prefab{Health: 10, MaxHealth: 10, Color: core.ColorEnemy},
		Food:          Prefab{Health: 10, MaxHealth: 10, Color: core.ColorFood},
		Snake:         Prefab{Health: 1, MaxHealth: 1, Color: core.ColorSnake},
	}
}

// PrefabFor returns the prefab for a team.
func (r Rules) PrefabFor(t Team) Prefab {
	switch t {
	case TeamEnemy:
		return r.Enemy
	case TeamFood:
		return r.Food
	case TeamSnake:
		return r.Snake
	default:
		return r.Player
	}
}
