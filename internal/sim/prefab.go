package sim

import "github.com/vovakirdan/tilesim/internal/core"

// NewPlayer creates the input-driven player. Combat runs before Collision
// so walking into a hostile cancels the step.
func NewPlayer(pos core.Vector2, rules Rules) *Entity {
	return NewPrefabWith("player", pos, rules, rules.Player)
}

// NewEnemy creates a stationary enemy that damages anything walking into it.
func NewEnemy(pos core.Vector2, rules Rules) *Entity {
	return NewPrefabWith("enemy", pos, rules, rules.Enemy)
}

// NewFood creates an inert food item.
func NewFood(pos core.Vector2, rules Rules) *Entity {
	return NewPrefabWith("food", pos, rules, rules.Food)
}

// NewSnake creates one snake body segment.
func NewSnake(pos core.Vector2, rules Rules) *Entity {
	return NewPrefabWith("snake", pos, rules, rules.Snake)
}

// NewSnakeHead creates an input-driven snake segment.
func NewSnakeHead(pos core.Vector2, rules Rules) *Entity {
	return NewPrefabWith("snake-head", pos, rules, rules.Snake)
}

// NewPrefab creates a prefab entity by kind name. It returns nil for
// unknown kinds.
func NewPrefab(kind string, pos core.Vector2, rules Rules) *Entity {
	team, ok := PrefabTeam(kind)
	if !ok {
		return nil
	}
	return NewPrefabWith(kind, pos, rules, rules.PrefabFor(team))
}

// NewPrefabWith creates a prefab whose own vitals come from p while its
// behaviors are built from rules. Segments a snake spawns therefore use
// rules.Snake, not p.
func NewPrefabWith(kind string, pos core.Vector2, rules Rules, p Prefab) *Entity {
	team, ok := PrefabTeam(kind)
	if !ok {
		return nil
	}

	var chain []Behavior
	switch kind {
	case "player":
		chain = []Behavior{NewInput(), NewCombat(), NewCollision()}
	case "enemy":
		chain = []Behavior{NewCombat(), NewCollision()}
	case "food":
		chain = []Behavior{NewCollision()}
	case "snake":
		chain = []Behavior{NewSpawnOnContact(rules), NewCollision()}
	case "snake-head":
		chain = []Behavior{NewInput(), NewSpawnOnContact(rules), NewCollision()}
	}
	return NewEntity(pos, p.Health, p.MaxHealth, p.Color, team, chain...)
}

// PrefabTeam returns the team a prefab kind belongs to.
func PrefabTeam(kind string) (Team, bool) {
	switch kind {
	case "player":
		return TeamPlayer, true
	case "enemy":
		return TeamEnemy, true
	case "food":
		return TeamFood, true
	case "snake", "snake-head":
		return TeamSnake, true
	default:
		return 0, false
	}
}

// PrefabKinds lists the kinds NewPrefab accepts.
func PrefabKinds() []string {
	return []string{"player", "enemy", "food", "snake", "snake-head"}
}
