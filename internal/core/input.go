package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, H, Left arrow - steer paddle left
	ActionRight          // D, L, Right arrow - steer paddle right
	ActionUp             // W, K, Up arrow - menu/editor cursor up
	ActionDown           // S, J, Down arrow - menu/editor cursor down
	ActionConfirm        // Enter, Space - start, launch, select
	ActionBack           // B, Escape - back to menu or editor
	ActionPause          // P - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one simulation tick,
// one bit per Action. The zero value is an empty frame.
type InputFrame uint16

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return 0
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a > ActionQuit {
		return
	}
	*f |= 1 << a
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a <= ActionQuit && f&(1<<a) != 0
}

// Steer folds Left/Right into a horizontal intent in [-1, 1].
func (f InputFrame) Steer() float64 {
	dir := 0.0
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	*f = 0
}
