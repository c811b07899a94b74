//go:build !windows

package hotkey

import (
	"context"
	"log/slog"
)

func Listen(context.Context, *slog.Logger, func(Action)) error {
	return ErrUnsupported
}
