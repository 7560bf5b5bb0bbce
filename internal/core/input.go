package core

// Action is a semantic input, decoupled from the key or button that
// produced it.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Move the aim left
	ActionRight            // Move the aim right
	ActionUp               // Move the aim up
	ActionDown             // Move the aim down
	ActionFineLeft         // Nudge the aim left
	ActionFineRight        // Nudge the aim right
	ActionLaunch           // Fire a shot at the aim point
	ActionPause            // Toggle pause while a shot runs
	ActionSave             // Write the quick-save slot
	ActionRestart          // Start a new round after game over
	ActionQuit             // Leave the session
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
	case ActionFineLeft:
		return "FineLeft"
	case ActionFineRight:
		return "FineRight"
	case ActionLaunch:
		return "Launch"
	case ActionPause:
		return "Pause"
	case ActionSave:
		return "Save"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
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
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
