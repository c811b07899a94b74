package hotkey

import "testing"

func TestDecode(t *testing.T) {
	if a, ok := Decode(0x77); !ok || a != TogglePause {
		t.Fatalf("F8 must toggle pause")
	}
	if a, ok := Decode(0x78); !ok || a != Reset {
		t.Fatalf("F9 must reset")
	}
	if _, ok := Decode(0x20); ok {
		t.Fatalf("space is not bound")
	}
	if TogglePause.String() != "toggle-pause" || Action(0).String() != "none" {
		t.Fatalf("unexpected action names")
	}
}
