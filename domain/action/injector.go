// Package action turns trigger events into key presses and diagnostic
// snapshots without blocking the capture loop.
package action

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUnsupported is returned by injectors that cannot run on this platform.
var ErrUnsupported = errors.New("action: injector not supported on this platform")

// Injector sends key transitions to the focused application.
type Injector interface {
	KeyDown(key string) error
	KeyUp(key string) error
	Name() string
	Close() error
}

// Injector names accepted by New.
const (
	InjectorAuto      = "auto"
	InjectorSendInput = "sendinput"
	InjectorSerial    = "serial"
	InjectorLog       = "log"
)

// Options configures New.
type Options struct {
	Kind       string
	Key        string
	SerialPort string
	SerialBaud int
}

// New builds the injector selected by opts.Kind. "auto" prefers native
// injection and falls back to logging when the platform has none.
func New(opts Options, logger *slog.Logger) (Injector, error) {
	switch strings.ToLower(opts.Kind) {
	case InjectorSendInput:
		return newNativeInjector(logger)
	case InjectorSerial:
		return OpenSerial(opts.SerialPort, opts.SerialBaud, logger)
	case InjectorLog:
		return NewLogInjector(logger), nil
	case "", InjectorAuto:
		inj, err := newNativeInjector(logger)
		if err == nil {
			return inj, nil
		}
		if !errors.Is(err, ErrUnsupported) {
			return nil, err
		}
		if logger != nil {
			logger.Warn("native key injection unavailable; key presses will only be logged")
		}
		return NewLogInjector(logger), nil
	default:
		return nil, fmt.Errorf("action: unknown injector %q", opts.Kind)
	}
}

// LogInjector records key transitions in the log and sends nothing.
type LogInjector struct {
	logger *slog.Logger
}

// NewLogInjector returns an injector that only logs.
func NewLogInjector(logger *slog.Logger) *LogInjector {
	return &LogInjector{logger: logger}
}

func (l *LogInjector) KeyDown(key string) error {
	if l.logger != nil {
		l.logger.Info("key down", "key", key)
	}
	return nil
}

func (l *LogInjector) KeyUp(key string) error {
	if l.logger != nil {
		l.logger.Info("key up", "key", key)
	}
	return nil
}

func (l *LogInjector) Name() string { return InjectorLog }
func (l *LogInjector) Close() error { return nil }

var _ Injector = (*LogInjector)(nil)
