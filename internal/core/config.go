package core

// RuntimeConfig holds process-level settings handed to the front end.
type RuntimeConfig struct {
	ScreenW  int   // terminal width in cells
	ScreenH  int   // terminal height in cells
	TickRate int   // simulation ticks per second
	Seed     int64 // fruit placement seed
}

// DefaultConfig assumes a classic 80×24 terminal at 8 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 8,
	}
}

// Fits reports whether a w×h character grid fits on the screen.
func (c RuntimeConfig) Fits(w, h int) bool {
	return w <= c.ScreenW && h <= c.ScreenH
}
