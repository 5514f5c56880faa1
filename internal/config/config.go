// Package config provides YAML-based simulation configuration loading and
// difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/tilesim/internal/core"
	"github.com/vovakirdan/tilesim/internal/sim"
)

// Config contains all tunables for a tilesim process.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Rules   RulesConfig   `yaml:"rules"`
	Prefabs PrefabsConfig `yaml:"prefabs"`
}

// RuntimeConfig defines how worlds are driven and where results go.
type RuntimeConfig struct {
	TickRate int    `yaml:"tick_rate"`
	Level    string `yaml:"level"`
	DBPath   string `yaml:"db"`
}

// RulesConfig defines behavior tunables.
type RulesConfig struct {
	FallTime      uint32 `yaml:"fall_time"`
	SpawnCooldown uint32 `yaml:"spawn_cooldown"`
	CooldownCap   uint32 `yaml:"cooldown_cap"`
}

// PrefabConfig defines the starting vitals of one prefab kind.
type PrefabConfig struct {
	Health    uint32 `yaml:"health"`
	MaxHealth uint32 `yaml:"max_health"`
	Color     string `yaml:"color"` // "#rrggbb"
}

// PrefabsConfig groups prefab settings per team.
type PrefabsConfig struct {
	Player PrefabConfig `yaml:"player"`
	Enemy  PrefabConfig `yaml:"enemy"`
	Food   PrefabConfig `yaml:"food"`
	Snake  PrefabConfig `yaml:"snake"`
}

// Default returns the hardcoded configuration.
func Default() Config {
	rules := sim.DefaultRules()
	return Config{
		Runtime: RuntimeConfig{
			TickRate: 30,
			Level:    "classic",
			DBPath:   "~/.tilesim/runs.db",
		},
		Rules: RulesConfig{
			FallTime:      rules.FallTime,
			SpawnCooldown: rules.SpawnCooldown,
			CooldownCap:   rules.CooldownCap,
		},
		Prefabs: PrefabsConfig{
			Player: prefabConfig(rules.Player),
			Enemy:  prefabConfig(rules.Enemy),
			Food:   prefabConfig(rules.Food),
			Snake:  prefabConfig(rules.Snake),
		},
	}
}

func prefabConfig(p sim.Prefab) PrefabConfig {
	return PrefabConfig{Health: p.Health, MaxHealth: p.MaxHealth, Color: p.Color.Hex()}
}

// Validate checks that the configuration can build a simulation.
func (c Config) Validate() error {
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("runtime.tick_rate must be positive, got %d", c.Runtime.TickRate)
	}
	if _, err := c.SimRules(); err != nil {
		return err
	}
	return nil
}

// SimRules converts the configuration into simulation rules.
func (c Config) SimRules() (sim.Rules, error) {
	rules := sim.Rules{
		FallTime:      c.Rules.FallTime,
		SpawnCooldown: c.Rules.SpawnCooldown,
		CooldownCap:   c.Rules.CooldownCap,
	}

	prefabs := []struct {
		name string
		in   PrefabConfig
		out  *sim.Prefab
	}{
		{"player", c.Prefabs.Player, &rules.Player},
		{"enemy", c.Prefabs.Enemy, &rules.Enemy},
		{"food", c.Prefabs.Food, &rules.Food},
		{"snake", c.Prefabs.Snake, &rules.Snake},
	}
	for _, p := range prefabs {
		color, err := core.ParseRGB(p.in.Color)
		if err != nil {
			return sim.Rules{}, fmt.Errorf("prefabs.%s.color: %w", p.name, err)
		}
		*p.out = sim.Prefab{Health: p.in.Health, MaxHealth: p.in.MaxHealth, Color: color}
	}
	return rules, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a string to a preset.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return DifficultyNormal, false
	}
}

// ApplyPreset modifies the config based on a difficulty preset. Normal
// leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Prefabs.Player.Health *= 2
		cfg.Prefabs.Player.MaxHealth *= 2
		cfg.Rules.SpawnCooldown /= 2
	case DifficultyHard:
		cfg.Prefabs.Player.Health = max(1, cfg.Prefabs.Player.Health/2)
		cfg.Prefabs.Player.MaxHealth = max(1, cfg.Prefabs.Player.MaxHealth/2)
		cfg.Rules.SpawnCooldown *= 2
		cfg.Rules.FallTime /= 2
	}
}
