package core

// RuntimeConfig contains configuration passed to the preview at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic textures
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// RNG returns the random source described by Seed.
func (c RuntimeConfig) RNG() *SimpleRNG {
	if c.Seed == 0 {
		return NewTimeRNG()
	}
	return NewRNG(uint64(c.Seed))
}
