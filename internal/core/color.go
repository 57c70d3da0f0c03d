package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color style.
type Color uint8

// Colors used by the snake renderer.
const (
	ColorDefault Color = iota
	ColorSnake
	ColorHead
	ColorFruit
	ColorWall
	ColorHUD
	ColorHint
	ColorBoard
)

// String returns the config name of the color slot.
func (c Color) String() string {
	switch c {
	case ColorSnake:
		return "snake"
	case ColorHead:
		return "head"
	case ColorFruit:
		return "fruit"
	case ColorWall:
		return "wall"
	case ColorHUD:
		return "hud"
	case ColorHint:
		return "hint"
	case ColorBoard:
		return "board"
	default:
		return "default"
	}
}
