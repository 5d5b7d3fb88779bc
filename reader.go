package serialport

import (
	"context"
	"errors"

	"github.com/allbin/go-serialport/internal/metrics"
)

// readLoop frames the byte stream from h into newline-delimited
// messages until cancelled, or until the device fails.
//
// The loop owns its duplicated handle exclusively and closes it on
// exit. Each iteration polls the cancellation context without blocking,
// then attempts a single-byte read bounded by the timeout configured at
// open time; cancellation latency is therefore at most one timeout
// interval. A timed-out read leaves the frame buffer untouched.
//
// Read faults terminate the loop silently: the caller that started the
// read already received its result, so a mid-read device loss is
// observable only as the stream stopping. Disconnect events are emitted
// at clone time and at write time instead.
func (m *Manager) readLoop(ctx context.Context, path string, h Handle) {
	defer h.Close()

	buf := make([]byte, 0, 64)
	one := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("reader_stopped", "port", path)
			return
		default:
		}

		n, err := h.Read(one)
		if err != nil {
			if errors.Is(err, ErrReadTimeout) {
				continue
			}
			metrics.ReaderErrors.Inc()
			m.log.Error("reader_failed", "port", path, "error", err)
			return
		}
		if n == 0 {
			// VTIME expired with no data
			continue
		}

		buf = append(buf, one[0])
		metrics.RxBytes.Inc()

		if one[0] == '\n' {
			msg := make([]byte, len(buf))
			copy(msg, buf)
			m.sink.Message(Message{Port: path, Data: msg, Size: len(msg)})
			metrics.RxMessages.Inc()
			buf = buf[:0]
		}
	}
}
