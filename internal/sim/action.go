package sim

import "github.com/vovakirdan/tui-snake/internal/core"

// Action records a committed movement direction.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
)

// Actions lists the four steering actions in a stable order.
var Actions = [...]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

// Vec returns the unit velocity for the action; ActionNone maps to (0, 0).
func (a Action) Vec() core.Vec {
	switch a {
	case ActionUp:
		return core.Vec{Y: -1}
	case ActionDown:
		return core.Vec{Y: 1}
	case ActionLeft:
		return core.Vec{X: -1}
	case ActionRight:
		return core.Vec{X: 1}
	default:
		return core.Vec{}
	}
}

// Opposite returns the 180° reversal of the action.
func (a Action) Opposite() Action {
	return actionFromVec(a.Vec().Neg())
}

// Valid reports whether the action is one of the four directions.
func (a Action) Valid() bool {
	return a >= ActionUp && a <= ActionRight
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseAction maps a direction name ("up", "down", "left", "right") to an Action.
func ParseAction(name string) (Action, bool) {
	for _, a := range Actions {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}

// actionFromVec maps a unit velocity back to its action; anything else is ActionNone.
func actionFromVec(v core.Vec) Action {
	for _, a := range Actions {
		if a.Vec() == v {
			return a
		}
	}
	return ActionNone
}

// ActionForCommand maps a steering command to its action.
func ActionForCommand(c core.Command) Action {
	switch c {
	case core.CommandUp:
		return ActionUp
	case core.CommandDown:
		return ActionDown
	case core.CommandLeft:
		return ActionLeft
	case core.CommandRight:
		return ActionRight
	default:
		return ActionNone
	}
}

// Command is the inverse of ActionForCommand.
func (a Action) Command() core.Command {
	switch a {
	case ActionUp:
		return core.CommandUp
	case ActionDown:
		return core.CommandDown
	case ActionLeft:
		return core.CommandLeft
	case ActionRight:
		return core.CommandRight
	default:
		return core.CommandNone
	}
}
