//go:build !windows

package capture

import "fmt"

func newGDIBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: gdi backend requires windows", ErrUnavailable)
}
