package serialport

import "golang.org/x/sys/unix"

// ModemSignals represents modem control signal states
type ModemSignals struct {
	CTS bool // Clear To Send
	DSR bool // Data Set Ready
	RI  bool // Ring Indicator
	DCD bool // Data Carrier Detect
	RTS bool // Request To Send
	DTR bool // Data Terminal Ready
}

// ModemSignaler is implemented by handles exposing modem control lines
type ModemSignaler interface {
	ModemSignals() (ModemSignals, error)
	SetRTS(state bool) error
	SetDTR(state bool) error
}

var _ ModemSignaler = (*devHandle)(nil)

// getModemStatus retrieves modem control signals using unix package
func getModemStatus(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCMGET)
}

func setModemBit(fd int, bit int, state bool) error {
	if state {
		return unix.IoctlSetInt(fd, unix.TIOCMBIS, bit)
	}
	return unix.IoctlSetInt(fd, unix.TIOCMBIC, bit)
}

// ModemSignals returns the current state of all modem control signals
func (h *devHandle) ModemSignals() (ModemSignals, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ModemSignals{}, ErrPortClosed
	}

	status, err := getModemStatus(h.fd)
	if err != nil {
		return ModemSignals{}, err
	}

	return ModemSignals{
		CTS: status&unix.TIOCM_CTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		RI:  status&unix.TIOCM_RI != 0,
		DCD: status&unix.TIOCM_CAR != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}, nil
}

// SetRTS manually sets the RTS signal state
func (h *devHandle) SetRTS(state bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrPortClosed
	}

	return setModemBit(h.fd, unix.TIOCM_RTS, state)
}

// SetDTR manually sets the DTR signal state
func (h *devHandle) SetDTR(state bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrPortClosed
	}

	return setModemBit(h.fd, unix.TIOCM_DTR, state)
}
