package serialport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ResetUSBDevice performs a USB-level reset of the adapter behind the
// given device path. This can recover hardware that is in a
// hung/unresponsive state.
//
// Requirements:
// - usbreset utility must be installed (from usbutils package)
// - Requires appropriate permissions (typically root/sudo)
func ResetUSBDevice(device string) error {
	bus, dev, err := usbBusDevice(filepath.Base(device))
	if err != nil {
		return err
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	// usbreset expects zero-padded 3-digit bus and device numbers
	usbPath := fmt.Sprintf("%03s/%03s", bus, dev)

	cmd := exec.Command("usbreset", usbPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}

	// USB devices typically take 1-2 seconds to re-enumerate
	time.Sleep(2 * time.Second)

	return nil
}

// ResetUSBDeviceBySerial resets a USB device by its serial number.
// Useful when device paths change after re-enumeration or when multiple
// adapters are connected.
func ResetUSBDeviceBySerial(serialNumber string) error {
	for _, d := range AvailablePorts() {
		if d.SerialNumber == serialNumber {
			return ResetUSBDevice(d.Path)
		}
	}
	return fmt.Errorf("device with serial %s not found", serialNumber)
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// usbBusDevice finds the USB bus and device numbers for a tty name by
// walking up its sysfs device path to the directory carrying busnum.
func usbBusDevice(name string) (string, string, error) {
	resolved, err := filepath.EvalSymlinks(filepath.Join("/sys/class/tty", name, "device"))
	if err != nil {
		return "", "", ErrUSBInfoNotAvailable
	}

	dir := resolved
	for dir != "/" {
		if _, err := os.Stat(filepath.Join(dir, "busnum")); err == nil {
			bus := readSysfsField(dir, "busnum")
			dev := readSysfsField(dir, "devnum")
			if bus == unknownField || dev == unknownField {
				return "", "", ErrUSBInfoNotAvailable
			}
			return bus, dev, nil
		}
		dir = filepath.Dir(dir)
	}

	return "", "", ErrUSBInfoNotAvailable
}
