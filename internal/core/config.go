package core

// RuntimeConfig contains configuration passed to the platform layer when a
// run starts.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// RunState summarises a run for the platform layer.
type RunState struct {
	Tick     uint64 // Ticks processed so far
	Score    int    // Current score
	GameOver bool   // No living player-controlled entity remains
	Paused   bool   // Whether the run is paused
}
