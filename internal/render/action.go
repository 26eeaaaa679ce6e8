package render

import (
	"fmt"
)

// Action is a semantic input, decoupled from the physical key bound to it.
type Action int

const (
	ActionNone Action = iota
	ActionRotateXPos
	ActionRotateXNeg
	ActionRotateYPos
	ActionRotateYNeg
	ActionRotateZPos
	ActionRotateZNeg
	ActionScaleUp
	ActionScaleDown
	ActionGrow
	ActionShrink
	ActionSpeedUp
	ActionSlowDown
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionRotateXPos: "rotate-positive-x",
	ActionRotateXNeg: "rotate-negative-x",
	ActionRotateYPos: "rotate-positive-y",
	ActionRotateYNeg: "rotate-negative-y",
	ActionRotateZPos: "rotate-positive-z",
	ActionRotateZNeg: "rotate-negative-z",
	ActionScaleUp:    "scale-up",
	ActionScaleDown:  "scale-down",
	ActionGrow:       "grow-shape",
	ActionShrink:     "shrink-shape",
	ActionSpeedUp:    "speed-up",
	ActionSlowDown:   "slow-down",
	ActionQuit:       "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a configuration name such as "rotate-positive-x" to its
// Action.
func ParseAction(name string) (Action, error) {
	for action, n := range actionNames {
		if n == name && action != ActionNone {
			return action, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Keymap binds keys to actions. A key maps to exactly one action.
type Keymap map[Key]Action

// Bind adds key -> action, refusing to rebind a key to a different action.
func (k Keymap) Bind(key Key, action Action) error {
	if existing, ok := k[key]; ok && existing != action {
		return fmt.Errorf("key %q bound to both %s and %s", key, existing, action)
	}
	k[key] = action
	return nil
}

// Resolve returns the action for key, or ActionNone when unbound.
func (k Keymap) Resolve(key Key) Action {
	if action, ok := k[key]; ok {
		return action
	}
	return ActionNone
}
