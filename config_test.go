package serialport

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaudRate != 115200 {
		t.Errorf("Expected BaudRate 115200, got %d", config.BaudRate)
	}

	if config.DataBits != 8 {
		t.Errorf("Expected DataBits 8, got %d", config.DataBits)
	}

	if config.StopBits != 2 {
		t.Errorf("Expected StopBits 2, got %d", config.StopBits)
	}

	if config.Parity != ParityNone {
		t.Errorf("Expected Parity None, got %v", config.Parity)
	}

	if config.FlowControl != FlowControlNone {
		t.Errorf("Expected FlowControl None, got %v", config.FlowControl)
	}

	if config.ReadTimeout != 200*time.Millisecond {
		t.Errorf("Expected ReadTimeout 200ms, got %v", config.ReadTimeout)
	}
}

func TestParityFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Parity
	}{
		{"Odd", ParityOdd},
		{"Even", ParityEven},
		{"None", ParityNone},
		{"", ParityNone},
		{"odd", ParityNone},   // case-sensitive, falls back
		{"Mark", ParityNone},  // unsupported, falls back
		{"junk", ParityNone},
	}

	for _, test := range tests {
		if got := ParityFromString(test.input); got != test.expected {
			t.Errorf("ParityFromString(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestFlowControlFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected FlowControl
	}{
		{"Software", FlowControlSoftware},
		{"Hardware", FlowControlHardware},
		{"None", FlowControlNone},
		{"", FlowControlNone},
		{"hardware", FlowControlNone}, // case-sensitive, falls back
		{"XON/XOFF", FlowControlNone},
	}

	for _, test := range tests {
		if got := FlowControlFromString(test.input); got != test.expected {
			t.Errorf("FlowControlFromString(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestDataBitsFromInt(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{5, 5},
		{6, 6},
		{7, 7},
		{8, 8},
		{0, 8},
		{9, 8},
		{-1, 8},
	}

	for _, test := range tests {
		if got := DataBitsFromInt(test.input); got != test.expected {
			t.Errorf("DataBitsFromInt(%d) = %d, expected %d", test.input, got, test.expected)
		}
	}
}

func TestStopBitsFromInt(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{1, 1},
		{2, 2},
		{0, 2},
		{3, 2},
	}

	for _, test := range tests {
		if got := StopBitsFromInt(test.input); got != test.expected {
			t.Errorf("StopBitsFromInt(%d) = %d, expected %d", test.input, got, test.expected)
		}
	}
}

func TestNormalizedFillsDefaults(t *testing.T) {
	c := Config{BaudRate: 9600}
	n := c.normalized()

	if n.DataBits != 8 || n.StopBits != 2 {
		t.Errorf("Expected 8 data bits and 2 stop bits, got %d/%d", n.DataBits, n.StopBits)
	}
	if n.ReadTimeout != 200*time.Millisecond {
		t.Errorf("Expected 200ms read timeout, got %v", n.ReadTimeout)
	}
	if n.BaudRate != 9600 {
		t.Errorf("BaudRate must not be defaulted, got %d", n.BaudRate)
	}
}

func TestGetBaudRate(t *testing.T) {
	tests := []struct {
		input    int
		hasError bool
	}{
		{115200, false},
		{9600, false},
		{57600, false},
		{123456, true}, // Invalid baud rate
		{0, true},
	}

	for _, test := range tests {
		result, err := getBaudRate(test.input)
		if test.hasError {
			if err != ErrInvalidBaudRate {
				t.Errorf("Expected ErrInvalidBaudRate for %d, got %v", test.input, err)
			}
		} else {
			if err != nil {
				t.Errorf("Unexpected error for baud rate %d: %v", test.input, err)
			}
			if result == 0 {
				t.Errorf("Got zero result for valid baud rate %d", test.input)
			}
		}
	}
}

func TestReadTimeoutTenths(t *testing.T) {
	tests := []struct {
		timeout  time.Duration
		expected uint8
	}{
		{200 * time.Millisecond, 2},
		{1 * time.Second, 10},
		{50 * time.Millisecond, 1},  // clamped up so reads never block forever
		{30 * time.Second, 255},     // clamped to the VTIME maximum
	}

	for _, test := range tests {
		c := Config{ReadTimeout: test.timeout}
		if got := readTimeoutTenths(c); got != test.expected {
			t.Errorf("readTimeoutTenths(%v) = %d, expected %d", test.timeout, got, test.expected)
		}
	}
}
