package core

// Action represents a semantic preview action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow - move the ship forward (-Z)
	ActionDown               // S, Down arrow - move the ship back (+Z)
	ActionLeft               // A, Left arrow - move the ship left (-X)
	ActionRight              // D, Right arrow - move the ship right (+X)
	ActionToggleFocus        // F - take the ship in or out of focus
	ActionHelp               // ? - toggle full help
	ActionBack               // B, Esc - return to the preset menu
	ActionQuit               // Q, Ctrl+C - exit
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
	case ActionToggleFocus:
		return "ToggleFocus"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
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

// Direction converts the movement actions of this frame into a unit step on
// the X/Z plane.
func (f InputFrame) Direction() Vec3 {
	var d Vec3
	if f.Has(ActionLeft) {
		d.X--
	}
	if f.Has(ActionRight) {
		d.X++
	}
	if f.Has(ActionUp) {
		d.Z--
	}
	if f.Has(ActionDown) {
		d.Z++
	}
	return d
}
