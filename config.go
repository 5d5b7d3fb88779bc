package serialport

import "time"

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "Odd"
	case ParityEven:
		return "Even"
	default:
		return "None"
	}
}

// FlowControl represents the flow control mode
type FlowControl int

const (
	FlowControlNone FlowControl = iota
	FlowControlSoftware
	FlowControlHardware
)

func (f FlowControl) String() string {
	switch f {
	case FlowControlSoftware:
		return "Software"
	case FlowControlHardware:
		return "Hardware"
	default:
		return "None"
	}
}

// Config holds the configuration for a serial port.
//
// Callers typically set only BaudRate; every other field has a defined
// default that is applied when the zero value is passed.
type Config struct {
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      Parity
	FlowControl FlowControl
	ReadTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		DataBits:    8,
		StopBits:    2,
		Parity:      ParityNone,
		FlowControl: FlowControlNone,
		ReadTimeout: 200 * time.Millisecond,
	}
}

// ParityFromString maps a parity name to its Parity value. Unrecognized
// values fall back to ParityNone rather than erroring; callers rely on
// the lenient defaults.
func ParityFromString(s string) Parity {
	switch s {
	case "Odd":
		return ParityOdd
	case "Even":
		return ParityEven
	default:
		return ParityNone
	}
}

// FlowControlFromString maps a flow control name to its FlowControl
// value. Unrecognized values fall back to FlowControlNone.
func FlowControlFromString(s string) FlowControl {
	switch s {
	case "Software":
		return FlowControlSoftware
	case "Hardware":
		return FlowControlHardware
	default:
		return FlowControlNone
	}
}

// DataBitsFromInt clamps a data bits value to the supported set
// {5, 6, 7, 8}, falling back to 8.
func DataBitsFromInt(v int) int {
	switch v {
	case 5, 6, 7, 8:
		return v
	default:
		return 8
	}
}

// StopBitsFromInt clamps a stop bits value to the supported set {1, 2},
// falling back to 2.
func StopBitsFromInt(v int) int {
	switch v {
	case 1, 2:
		return v
	default:
		return 2
	}
}

// normalized applies the lenient defaulting rules to every field except
// BaudRate, which has no default and is validated at open time.
func (c Config) normalized() Config {
	c.DataBits = DataBitsFromInt(c.DataBits)
	c.StopBits = StopBitsFromInt(c.StopBits)
	if c.Parity != ParityOdd && c.Parity != ParityEven {
		c.Parity = ParityNone
	}
	if c.FlowControl != FlowControlSoftware && c.FlowControl != FlowControlHardware {
		c.FlowControl = FlowControlNone
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 200 * time.Millisecond
	}
	return c
}
