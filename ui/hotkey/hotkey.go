// Package hotkey listens for global pause/reset keys.
package hotkey

import (
	"errors"
)

// ErrUnsupported is returned where no global keyboard hook exists.
var ErrUnsupported = errors.New("hotkey: global hooks not supported on this platform")

// Action is a hotkey command.
type Action int

const (
	TogglePause Action = iota + 1
	Reset
)

func (a Action) String() string {
	switch a {
	case TogglePause:
		return "toggle-pause"
	case Reset:
		return "reset"
	default:
		return "none"
	}
}

// Virtual-key codes of the bound keys.
const (
	vkF8 = 0x77
	vkF9 = 0x78
)

// Decode maps a key-down virtual-key code to an Action.
func Decode(vk uint32) (Action, bool) {
	switch vk {
	case vkF8:
		return TogglePause, true
	case vkF9:
		return Reset, true
	}
	return 0, false
}
