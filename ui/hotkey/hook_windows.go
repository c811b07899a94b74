//go:build windows

package hotkey

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"
)

// Listen installs a low-level keyboard hook and calls handle for every bound
// key press until ctx is done. handle runs on the listener goroutine.
func Listen(ctx context.Context, logger *slog.Logger, handle func(Action)) error {
	events := make(chan types.KeyboardEvent, 100)
	if err := keyboard.Install(nil, events); err != nil {
		return fmt.Errorf("hotkey: install hook: %w", err)
	}
	go func() {
		defer func() {
			if err := keyboard.Uninstall(); err != nil && logger != nil {
				logger.Warn("hotkey: uninstall hook", "error", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				if ev.Message != types.WM_KEYDOWN {
					continue
				}
				if a, ok := Decode(uint32(ev.VKCode)); ok {
					if logger != nil {
						logger.Info("hotkey", "action", a.String())
					}
					handle(a)
				}
			}
		}
	}()
	return nil
}
