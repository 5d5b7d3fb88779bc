package serialport

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeHandle is a scriptable Handle double. Read serves the script one
// byte at a time, then returns readErr if set, otherwise behaves like a
// device read that keeps timing out.
type fakeHandle struct {
	mu       sync.Mutex
	script   []byte
	pos      int
	readErr  error
	writeErr error
	cloneErr error
	clones   int
	written  []byte
	closed   bool
	child    *fakeHandle
}

func (h *fakeHandle) Read(p []byte) (int, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0, ErrPortClosed
	}
	if h.pos < len(h.script) {
		p[0] = h.script[h.pos]
		h.pos++
		h.mu.Unlock()
		return 1, nil
	}
	err := h.readErr
	h.mu.Unlock()
	if err != nil {
		return 0, err
	}
	time.Sleep(time.Millisecond)
	return 0, nil
}

func (h *fakeHandle) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, ErrPortClosed
	}
	if h.writeErr != nil {
		return 0, h.writeErr
	}
	h.written = append(h.written, p...)
	return len(p), nil
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrPortClosed
	}
	h.closed = true
	return nil
}

func (h *fakeHandle) Clone() (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cloneErr != nil {
		return nil, h.cloneErr
	}
	h.clones++
	c := &fakeHandle{script: h.script, readErr: h.readErr}
	h.child = c
	return c, nil
}

func (h *fakeHandle) cloneCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clones
}

func (h *fakeHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *fakeHandle) lastClone() *fakeHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.child
}

// waitFor polls cond until it holds or a second passes
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestOpenNonExistentDevice(t *testing.T) {
	_, err := Open("/dev/nonexistent-serial-device", Config{BaudRate: 9600})
	if err == nil {
		t.Error("Expected error when opening non-existent device")
	}
}

func TestFakeHandleCloseIsTerminal(t *testing.T) {
	h := &fakeHandle{}

	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := h.Close(); !errors.Is(err, ErrPortClosed) {
		t.Errorf("Expected ErrPortClosed on double close, got %v", err)
	}
	if _, err := h.Read(make([]byte, 1)); !errors.Is(err, ErrPortClosed) {
		t.Errorf("Expected ErrPortClosed on read after close, got %v", err)
	}
	if _, err := h.Write([]byte("x")); !errors.Is(err, ErrPortClosed) {
		t.Errorf("Expected ErrPortClosed on write after close, got %v", err)
	}
}
