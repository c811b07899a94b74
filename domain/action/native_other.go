//go:build !windows

package action

import "log/slog"

func newNativeInjector(*slog.Logger) (Injector, error) {
	return nil, ErrUnsupported
}
