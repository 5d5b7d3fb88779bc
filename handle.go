package serialport

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Handle is the primitive the manager and reader engine operate on: a
// raw device connection offering blocking read/write with the timeout
// configured at open time.
//
// Clone creates an independent duplicate of the handle. The duplicate
// shares the underlying device but carries its own descriptor, so a
// background reader can own it while the original stays usable by the
// writer path.
type Handle interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	Clone() (Handle, error)
}

// Flusher is implemented by handles that can discard queued device
// data. The termios-backed handle implements it; test doubles need not.
type Flusher interface {
	FlushInput() error
	FlushOutput() error
}

// devHandle is the concrete termios-backed implementation of Handle
type devHandle struct {
	mu     sync.RWMutex
	fd     int
	path   string
	closed bool
}

// Ensure devHandle implements Handle at compile time
var (
	_ Handle  = (*devHandle)(nil)
	_ Flusher = (*devHandle)(nil)
)

// Open opens a serial device with the given configuration. Fields left
// at their zero value in config take the documented defaults; an
// unsupported baud rate is rejected.
func Open(device string, config Config) (Handle, error) {
	return openHandle(device, config)
}

func openHandle(device string, config Config) (*devHandle, error) {
	config = config.normalized()

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", device, err)
	}

	if err := configureTermios(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &devHandle{fd: fd, path: device}, nil
}

// Read reads from the device. A read that times out with no data
// returns (0, nil); callers polling a byte stream treat that as a
// timeout and retry.
func (h *devHandle) Read(p []byte) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0, ErrPortClosed
	}

	return unix.Read(h.fd, p)
}

// Write writes data to the device
func (h *devHandle) Write(p []byte) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0, ErrPortClosed
	}

	return unix.Write(h.fd, p)
}

// Close closes the handle's descriptor. Duplicates created by Clone
// remain open; each duplicate is closed independently.
func (h *devHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrPortClosed
	}

	err := unix.Close(h.fd)
	h.closed = true
	return err
}

// Clone duplicates the descriptor. It fails once the handle has been
// closed, which is how a disconnected device surfaces at read-start
// time.
func (h *devHandle) Clone() (Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, ErrPortClosed
	}

	fd, err := unix.Dup(h.fd)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate %s: %v", h.path, err)
	}

	return &devHandle{fd: fd, path: h.path}, nil
}

// FlushInput discards any unread input data
func (h *devHandle) FlushInput() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(h.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// FlushOutput discards any unwritten output data
func (h *devHandle) FlushOutput() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(h.fd, unix.TCFLSH, unix.TCOFLUSH)
}
