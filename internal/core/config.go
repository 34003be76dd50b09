package core

// RuntimeConfig contains configuration passed to a play session at initialization.
type RuntimeConfig struct {
	ScreenW  int // Terminal width in characters (host surface only)
	ScreenH  int // Terminal height in characters (host surface only)
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
