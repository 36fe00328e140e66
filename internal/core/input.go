package core

// Action is a discrete player command, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionTurnLeft          // A, Left arrow - rotate facing 45° counter-clockwise
	ActionTurnRight         // D, Right arrow - rotate facing 45° clockwise
	ActionAccelerate        // W, Up arrow - speed +0.1
	ActionDecelerate        // S, Down arrow - speed -0.1
	ActionPause             // P, Space - pause/unpause
	ActionQuit              // Q, Ctrl+C - end the run
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionAccelerate:
		return "Accelerate"
	case ActionDecelerate:
		return "Decelerate"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input gathered during one tick interval.
// A tick carries at most one command: the first one polled wins and later
// ones are dropped. Quit is remembered separately so it is never lost.
type InputFrame struct {
	command Action
	quit    bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionQuit {
		f.quit = true
		return
	}
	if f.command == ActionNone {
		f.command = a
	}
}

// Command returns the tick's command, or ActionNone.
func (f InputFrame) Command() Action {
	return f.command
}

// Has returns true if the given action was recorded this frame.
func (f InputFrame) Has(a Action) bool {
	if a == ActionQuit {
		return f.quit
	}
	return a != ActionNone && f.command == a
}

// Empty reports whether nothing was recorded.
func (f InputFrame) Empty() bool {
	return f.command == ActionNone && !f.quit
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}
