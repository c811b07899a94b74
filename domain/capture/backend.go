package capture

import (
	"errors"
	"fmt"
	"image"

	kbinani "github.com/kbinani/screenshot"
	"github.com/vova616/screenshot"
)

var (
	// ErrUnavailable marks a failed region copy. The tick is skipped.
	ErrUnavailable = errors.New("capture: unavailable")
	// ErrNoDisplay is returned when no active display can be found.
	ErrNoDisplay = errors.New("capture: no active display")
)

// Backend copies a screen rectangle into a fresh RGBA image.
type Backend interface {
	Name() string
	Grab(r image.Rectangle) (*image.RGBA, error)
}

// Backend names accepted by NewBackend.
const (
	BackendAuto       = "auto"
	BackendGDI        = "gdi"
	BackendScreenshot = "screenshot"
	BackendKbinani    = "kbinani"
)

// NewBackend returns the named backend. "auto" picks GDI on Windows and the
// kbinani backend elsewhere.
func NewBackend(name string) (Backend, error) {
	switch name {
	case BackendGDI:
		return newGDIBackend()
	case BackendScreenshot:
		return screenshotBackend{}, nil
	case BackendKbinani:
		return kbinaniBackend{}, nil
	case "", BackendAuto:
		if b, err := newGDIBackend(); err == nil {
			return b, nil
		}
		return kbinaniBackend{}, nil
	default:
		return nil, fmt.Errorf("capture: unknown backend %q", name)
	}
}

// screenshotBackend uses github.com/vova616/screenshot.
type screenshotBackend struct{}

func (screenshotBackend) Name() string { return BackendScreenshot }

func (screenshotBackend) Grab(r image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return img, nil
}

// kbinaniBackend uses github.com/kbinani/screenshot.
type kbinaniBackend struct{}

func (kbinaniBackend) Name() string { return BackendKbinani }

func (kbinaniBackend) Grab(r image.Rectangle) (*image.RGBA, error) {
	img, err := kbinani.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return img, nil
}

var (
	_ Backend = screenshotBackend{}
	_ Backend = kbinaniBackend{}
)
