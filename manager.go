package serialport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/allbin/go-serialport/internal/logging"
	"github.com/allbin/go-serialport/internal/metrics"
)

// Manager is the command surface over a registry of open serial ports.
// It orchestrates open/close lifecycles, synchronous writes, and the
// background readers that stream framed messages to the configured
// sink.
//
// A Manager is safe for concurrent use. Create one at application start
// and share it; the registry it owns is the single source of truth for
// which ports are open.
type Manager struct {
	registry *Registry
	sink     Sink
	log      *slog.Logger
	open     func(device string, config Config) (Handle, error)
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithSink sets the sink receiving message and disconnect events
func WithSink(s Sink) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithLogger sets the structured logger used for lifecycle events
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithOpener replaces the device opener, used by tests to substitute a
// handle double for real termios devices.
func WithOpener(open func(device string, config Config) (Handle, error)) ManagerOption {
	return func(m *Manager) {
		if open != nil {
			m.open = open
		}
	}
}

// NewManager creates a Manager with an empty registry
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: NewRegistry(),
		sink:     discardSink{},
		log:      logging.L(),
		open:     Open,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AvailablePorts enumerates attached USB serial devices, sorted
// ascending by device path. It never fails; enumeration errors yield an
// empty result.
func (m *Manager) AvailablePorts() []PortDescriptor {
	return AvailablePorts()
}

// OpenPort opens device with the given configuration and registers it.
// It fails with ErrAlreadyOpen when the port is already registered and
// with ErrOpen when the physical device cannot be opened.
func (m *Manager) OpenPort(device string, config Config) error {
	if m.registry.Contains(device) {
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, device)
	}

	// The device is opened outside the registry lock; a losing race
	// with a concurrent open is detected at insert time.
	h, err := m.open(device, config.normalized())
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrOpen, device, err)
	}

	if err := m.registry.Insert(device, &Session{handle: h}); err != nil {
		h.Close()
		return err
	}

	metrics.OpenPorts.Inc()
	m.log.Info("port_open", "port", device, "baud", config.BaudRate)
	return nil
}

// ClosePort cancels any active reader for device, removes it from the
// registry and closes its handle. It fails with ErrNotFound when the
// port is not open.
func (m *Manager) ClosePort(device string) error {
	s, err := m.registry.Remove(device)
	if err != nil {
		return err
	}

	m.teardown(device, s)
	m.log.Info("port_closed", "port", device)
	return nil
}

// CloseAll cancels every active reader and clears the entire registry.
// The table is emptied atomically; no caller can observe a partially
// cleared registry.
func (m *Manager) CloseAll() error {
	for device, s := range m.registry.RemoveAll() {
		m.teardown(device, s)
	}
	m.log.Info("ports_closed_all")
	return nil
}

// ForceClose is the idempotent variant of ClosePort: a port that is not
// open is not an error.
func (m *Manager) ForceClose(device string) error {
	s, err := m.registry.Remove(device)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	m.teardown(device, s)
	m.log.Info("port_force_closed", "port", device)
	return nil
}

// teardown cancels the reader before the session's handle goes away so
// no reader keeps running against a port the registry no longer owns.
func (m *Manager) teardown(device string, s *Session) {
	s.cancelRead()
	if err := s.handle.Close(); err != nil && !errors.Is(err, ErrPortClosed) {
		m.log.Warn("port_close_error", "port", device, "error", err)
	}
	metrics.OpenPorts.Dec()
}

// ReadOptions carries the optional read parameters. Both fields are
// accepted for API compatibility and are informational only: the
// per-byte timeout configured at open time governs the loop, and Size
// places no hard cap on frame length.
type ReadOptions struct {
	Timeout time.Duration
	Size    int
}

// StartRead spawns a background reader for device that frames the
// incoming byte stream into newline-delimited messages and emits each
// one to the sink. It returns as soon as the reader is running, not
// when it terminates.
//
// Starting a read while one is already active is a no-op success. A
// failure to duplicate the handle emits a Disconnected event before
// returning ErrClone.
func (m *Manager) StartRead(device string, opts ReadOptions) error {
	_ = opts

	return m.registry.WithSession(device, func(s *Session) error {
		if s.reading() {
			m.log.Debug("reader_already_active", "port", device)
			return nil
		}

		dup, err := s.handle.Clone()
		if err != nil {
			m.sink.Disconnected(device, fmt.Sprintf("serial port %s disconnected", device))
			metrics.DisconnectEvents.Inc()
			return fmt.Errorf("%w %s: %v", ErrClone, device, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go m.readLoop(ctx, device, dup)

		m.log.Info("reader_started", "port", device)
		return nil
	})
}

// CancelRead stops the background reader for device. Cancelling a port
// with no active reader is a no-op success; cancelling a port that is
// not open fails with ErrNotFound.
func (m *Manager) CancelRead(device string) error {
	return m.registry.WithSession(device, func(s *Session) error {
		s.cancelRead()
		m.log.Info("read_cancelled", "port", device)
		return nil
	})
}

// Write writes text to device and returns the number of bytes written
func (m *Manager) Write(device, text string) (int, error) {
	return m.writeBytes(device, []byte(text))
}

// WriteBinary writes raw bytes to device and returns the number of
// bytes written
func (m *Manager) WriteBinary(device string, data []byte) (int, error) {
	return m.writeBytes(device, data)
}

// writeBytes performs a synchronous write through the session's handle.
// The registry lock serializes concurrent writers on the same port. A
// write failure emits a Disconnected event before returning ErrWrite.
func (m *Manager) writeBytes(device string, data []byte) (int, error) {
	var n int
	err := m.registry.WithSession(device, func(s *Session) error {
		var werr error
		n, werr = s.handle.Write(data)
		if werr != nil {
			m.sink.Disconnected(device, fmt.Sprintf("serial port %s disconnected", device))
			metrics.DisconnectEvents.Inc()
			return fmt.Errorf("%w %s: %v", ErrWrite, device, werr)
		}
		metrics.TxBytes.Add(float64(n))
		return nil
	})
	return n, err
}

// Flush discards queued input and output on device. Handles that do not
// support flushing are skipped silently.
func (m *Manager) Flush(device string) error {
	return m.registry.WithSession(device, func(s *Session) error {
		f, ok := s.handle.(Flusher)
		if !ok {
			return nil
		}
		if err := f.FlushInput(); err != nil {
			return err
		}
		return f.FlushOutput()
	})
}

// OpenCount reports how many ports are currently registered
func (m *Manager) OpenCount() int {
	return m.registry.Len()
}
