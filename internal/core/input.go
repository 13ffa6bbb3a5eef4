package core

// Action represents a logical command, abstracted from physical key presses.
// The input surface produces these; the run controller consumes them.
type Action int

const (
	ActionNone      Action = iota
	ActionJump             // Space, W, Up - jump (double jump in the air with the perk)
	ActionPause            // P - pause/unpause the run
	ActionOpenShop         // S - open the shop (implicitly pauses)
	ActionCloseShop        // Esc, B - close the shop
	ActionRestart          // R, Enter - start a new run after game over
	ActionQuit             // Q, Ctrl+C - exit
	ActionUp               // Up, K - shop cursor
	ActionDown             // Down, J - shop cursor
	ActionConfirm          // Enter - buy/activate in the shop
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionOpenShop:
		return "OpenShop"
	case ActionCloseShop:
		return "CloseShop"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}
