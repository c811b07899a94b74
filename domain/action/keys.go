package action

import (
	"fmt"
	"strconv"
	"strings"
)

var namedKeys = map[string]byte{
	"SPACE":     0x20,
	"ENTER":     0x0D,
	"RETURN":    0x0D,
	"TAB":       0x09,
	"ESC":       0x1B,
	"ESCAPE":    0x1B,
	"BACKSPACE": 0x08,
	"SHIFT":     0x10,
	"CTRL":      0x11,
	"ALT":       0x12,
	"LEFT":      0x25,
	"UP":        0x26,
	"RIGHT":     0x27,
	"DOWN":      0x28,
}

// ParseVK converts a key token (e.g. "space", "F3", "R", "7") into a Windows
// virtual-key code. Recognizes F1..F12, letters, digits and a few named keys.
func ParseVK(key string) (byte, error) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if vk, ok := namedKeys[k]; ok {
		return vk, nil
	}
	if len(k) == 1 {
		c := k[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return c, nil // VK codes match ASCII here
		}
	}
	if len(k) >= 2 && k[0] == 'F' {
		if n, err := strconv.Atoi(k[1:]); err == nil && n >= 1 && n <= 12 && k[1] != '0' {
			return byte(0x70 + n - 1), nil // VK_F1=0x70
		}
	}
	return 0, fmt.Errorf("action: unknown key %q", key)
}
