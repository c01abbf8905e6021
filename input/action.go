package input

// Action is a keyboard command, already decoupled from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionRotateLeft
	ActionRotateRight
	ActionDelete
	ActionPlay
	ActionReset
	ActionStartRamp
	ActionStartSeesaw
	ActionToggleDebug
	ActionCopyLayout
)

func (a Action) String() string {
	switch a {
	case ActionRotateLeft:
		return "rotate_left"
	case ActionRotateRight:
		return "rotate_right"
	case ActionDelete:
		return "delete"
	case ActionPlay:
		return "play"
	case ActionReset:
		return "reset"
	case ActionStartRamp:
		return "start_ramp"
	case ActionStartSeesaw:
		return "start_seesaw"
	case ActionToggleDebug:
		return "toggle_debug"
	case ActionCopyLayout:
		return "copy_layout"
	}
	return "none"
}
