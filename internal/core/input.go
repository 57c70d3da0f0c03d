package core

// Command is a semantic input, abstracted from physical key presses.
// Input sources (keyboard, pilots, tests) produce commands; the simulation
// consumes them without knowing where they came from.
type Command int

const (
	CommandNone  Command = iota
	CommandUp            // Up arrow, W
	CommandDown          // Down arrow, S
	CommandLeft          // Left arrow, A
	CommandRight         // Right arrow, D
	CommandPause         // Space
	CommandReset         // Esc, R
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandPause:
		return "pause"
	case CommandReset:
		return "reset"
	default:
		return "unknown"
	}
}

// IsDirection reports whether the command steers the snake.
func (c Command) IsDirection() bool {
	return c >= CommandUp && c <= CommandRight
}
