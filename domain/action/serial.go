package action

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/tarm/serial"
)

// SerialInjector forwards key transitions to a microcontroller acting as a
// USB keyboard. The line protocol is "key_down:<key>\n" / "key_up:<key>\n".
type SerialInjector struct {
	mu     sync.Mutex
	port   io.WriteCloser
	name   string
	logger *slog.Logger
}

// OpenSerial opens the named port (8N1) at baud.
func OpenSerial(name string, baud int, logger *slog.Logger) (*SerialInjector, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     name,
		Baud:     baud,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("action: open serial %s: %w", name, err)
	}
	if logger != nil {
		logger.Info("serial injector ready", "port", name, "baud", baud)
	}
	return NewSerialInjector(port, name, logger), nil
}

// NewSerialInjector wraps an already open port.
func NewSerialInjector(port io.WriteCloser, name string, logger *slog.Logger) *SerialInjector {
	return &SerialInjector{port: port, name: name, logger: logger}
}

func (s *SerialInjector) KeyDown(key string) error {
	return s.write(fmt.Sprintf("key_down:%s\n", key))
}

func (s *SerialInjector) KeyUp(key string) error {
	return s.write(fmt.Sprintf("key_up:%s\n", key))
}

// write serializes lines so overlapping presses never interleave bytes.
func (s *SerialInjector) write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return fmt.Errorf("action: serial %s closed", s.name)
	}
	if _, err := io.WriteString(s.port, line); err != nil {
		return fmt.Errorf("action: serial %s: %w", s.name, err)
	}
	return nil
}

func (s *SerialInjector) Name() string { return InjectorSerial }

func (s *SerialInjector) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

var _ Injector = (*SerialInjector)(nil)
