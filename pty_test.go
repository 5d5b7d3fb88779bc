package serialport

import (
	"errors"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// The PTY pair stands in for a real serial device: the manager opens
// the slave side through the normal termios path while the test drives
// the master side.
func TestManagerEndToEndPTY(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	sink := NewChanSink(16)
	mgr := NewManager(WithSink(sink))
	cfg := Config{BaudRate: 115200, ReadTimeout: 100 * time.Millisecond}

	require.NoError(t, mgr.OpenPort(slave.Name(), cfg))
	t.Cleanup(func() { mgr.ForceClose(slave.Name()) })

	require.NoError(t, mgr.Flush(slave.Name()))
	require.NoError(t, mgr.StartRead(slave.Name(), ReadOptions{}))

	_, err = master.Write([]byte("hello\n"))
	require.NoError(t, err)

	select {
	case ev := <-sink.C:
		require.False(t, ev.Disconnected)
		require.Equal(t, slave.Name(), ev.Port)
		require.Equal(t, "hello\n", string(ev.Data))
		require.Equal(t, 6, ev.Size)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for framed message")
	}

	// Two frames in one burst arrive as two messages
	_, err = master.Write([]byte("ab\ncd\n"))
	require.NoError(t, err)

	for _, want := range []string{"ab\n", "cd\n"} {
		select {
		case ev := <-sink.C:
			require.Equal(t, want, string(ev.Data))
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for frame %q", want)
		}
	}

	// Writes go out through the original handle while the reader owns
	// its duplicate
	n, err := mgr.Write(slave.Name(), "pong\n")
	require.NoError(t, err)
	require.Equal(t, 5, n)

	buf := make([]byte, 16)
	n, err = master.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "pong\n", string(buf[:n]))

	require.NoError(t, mgr.CancelRead(slave.Name()))
	require.NoError(t, mgr.ClosePort(slave.Name()))
	require.Equal(t, 0, mgr.OpenCount())
}

func TestManagerPTYOpenTwice(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	mgr := NewManager()
	cfg := Config{BaudRate: 9600, ReadTimeout: 100 * time.Millisecond}

	require.NoError(t, mgr.OpenPort(slave.Name(), cfg))
	t.Cleanup(func() { mgr.ForceClose(slave.Name()) })

	require.ErrorIs(t, mgr.OpenPort(slave.Name(), cfg), ErrAlreadyOpen)
}

func TestHandleCloneAfterClose(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	h, err := Open(slave.Name(), Config{BaudRate: 115200})
	require.NoError(t, err)

	dup, err := h.Clone()
	require.NoError(t, err)
	require.NoError(t, dup.Close())

	require.NoError(t, h.Close())

	_, err = h.Clone()
	require.True(t, errors.Is(err, ErrPortClosed))
}
