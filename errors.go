package serialport

import "errors"

// Predefined error types for robust error handling
var (
	ErrNotFound        = errors.New("serial port not open")
	ErrAlreadyOpen     = errors.New("serial port already open")
	ErrOpen            = errors.New("failed to open serial port")
	ErrClone           = errors.New("failed to clone serial port handle")
	ErrWrite           = errors.New("failed to write to serial port")
	ErrPortClosed      = errors.New("serial port is closed")
	ErrInvalidBaudRate = errors.New("invalid baud rate")
	ErrReadTimeout     = errors.New("read operation timed out")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)
