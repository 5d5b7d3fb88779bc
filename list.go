package serialport

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Device class names reported in PortDescriptor.Type
const (
	DeviceTypeUSB       = "USB"
	DeviceTypeBluetooth = "Bluetooth"
	DeviceTypePCI       = "PCI"
	DeviceTypeUnknown   = "Unknown"
)

const unknownField = "Unknown"

// PortDescriptor describes one attached serial device. Informational
// fields default to "Unknown" when sysfs does not provide them.
type PortDescriptor struct {
	Path         string
	Type         string
	VendorID     string
	ProductID    string
	SerialNumber string
	Manufacturer string
	Product      string
}

func newDescriptor(path string) PortDescriptor {
	return PortDescriptor{
		Path:         path,
		Type:         DeviceTypeUnknown,
		VendorID:     unknownField,
		ProductID:    unknownField,
		SerialNumber: unknownField,
		Manufacturer: unknownField,
		Product:      unknownField,
	}
}

// AvailablePorts enumerates attached serial devices via /sys/class/tty,
// keeping only USB-backed TTYs, sorted ascending by device path.
// Virtual TTYs and legacy motherboard UARTs are excluded. Enumeration
// never fails; an error yields an empty result.
func AvailablePorts() []PortDescriptor {
	return availablePortsFrom("/sys/class/tty", "/dev")
}

func availablePortsFrom(sysClassTTY, devDir string) []PortDescriptor {
	entries, err := os.ReadDir(sysClassTTY)
	if err != nil {
		return nil
	}

	var ports []PortDescriptor
	for _, entry := range entries {
		name := entry.Name()

		// No device symlink means a virtual TTY
		resolved, err := filepath.EvalSymlinks(filepath.Join(sysClassTTY, name, "device"))
		if err != nil {
			continue
		}

		// Platform UARTs (ttyS*) resolve to PNP/platform paths, not USB
		if !strings.Contains(resolved, "usb") {
			continue
		}

		d := newDescriptor(filepath.Join(devDir, name))
		d.Type = DeviceTypeUSB
		enrichUSBInfo(&d, resolved)
		ports = append(ports, d)
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Path < ports[j].Path })
	return ports
}

// enrichUSBInfo walks up from the resolved tty device path to the USB
// device directory (the one containing idVendor) and fills in the
// descriptor's metadata fields.
func enrichUSBInfo(d *PortDescriptor, dir string) {
	for dir != "/" && dir != "." {
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			d.VendorID = readSysfsField(dir, "idVendor")
			d.ProductID = readSysfsField(dir, "idProduct")
			d.SerialNumber = readSysfsField(dir, "serial")
			d.Manufacturer = readSysfsField(dir, "manufacturer")
			d.Product = readSysfsField(dir, "product")
			return
		}
		dir = filepath.Dir(dir)
	}
}

func readSysfsField(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return unknownField
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return unknownField
	}
	return s
}
