//go:build windows

package action

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"
)

const keyeventfKeyUp = 0x0002

var (
	user32     = windows.NewLazySystemDLL("user32.dll")
	keybdEvent = user32.NewProc("keybd_event")
)

// nativeInjector drives keybd_event. Each key token is resolved once.
type nativeInjector struct {
	logger *slog.Logger
}

func newNativeInjector(logger *slog.Logger) (Injector, error) {
	if err := keybdEvent.Find(); err != nil {
		return nil, fmt.Errorf("action: keybd_event: %w", err)
	}
	return &nativeInjector{logger: logger}, nil
}

func (n *nativeInjector) KeyDown(key string) error { return n.send(key, 0) }
func (n *nativeInjector) KeyUp(key string) error   { return n.send(key, keyeventfKeyUp) }

func (n *nativeInjector) send(key string, flags uintptr) error {
	vk, err := ParseVK(key)
	if err != nil {
		return err
	}
	_, _, _ = keybdEvent.Call(uintptr(vk), 0, flags, 0)
	return nil
}

func (n *nativeInjector) Name() string { return InjectorSendInput }
func (n *nativeInjector) Close() error { return nil }
