package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction converts a short direction token ("U", "down", "l", ...) to
// a movement action. Returns ActionNone and false if unrecognised.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "u", "U", "up", "Up", "UP":
		return ActionUp, true
	case "d", "D", "down", "Down", "DOWN":
		return ActionDown, true
	case "l", "L", "left", "Left", "LEFT":
		return ActionLeft, true
	case "r", "R", "right", "Right", "RIGHT":
		return ActionRight, true
	case ".", "-", "none", "None", "NONE":
		return ActionNone, true
	default:
		return ActionNone, false
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Movement folds the directional actions of this frame into the single
// movement vector consumed by the simulation. Opposite directions cancel.
func (f InputFrame) Movement() Vector2 {
	var v Vector2
	if f.Has(ActionUp) {
		v.Y--
	}
	if f.Has(ActionDown) {
		v.Y++
	}
	if f.Has(ActionLeft) {
		v.X--
	}
	if f.Has(ActionRight) {
		v.X++
	}
	return v
}
