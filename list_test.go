package serialport

import (
	"os"
	"path/filepath"
	"testing"
)

// fixture builds a fake /sys/class/tty tree. USB-backed ttys get a
// device symlink resolving into a path containing "usb"; metadata files
// live in the ancestor directory carrying idVendor.
func writeFixtureTTY(t *testing.T, root, name, deviceDir string, fields map[string]string) {
	t.Helper()

	sysTTY := filepath.Join(root, "class", "tty", name)
	if err := os.MkdirAll(sysTTY, 0o755); err != nil {
		t.Fatal(err)
	}

	intf := filepath.Join(deviceDir, name+"-interface")
	if err := os.MkdirAll(intf, 0o755); err != nil {
		t.Fatal(err)
	}
	for field, value := range fields {
		if err := os.WriteFile(filepath.Join(deviceDir, field), []byte(value+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.Symlink(intf, filepath.Join(sysTTY, "device")); err != nil {
		t.Fatal(err)
	}
}

func TestAvailablePortsFromFixture(t *testing.T) {
	root := t.TempDir()
	sys := filepath.Join(root, "class", "tty")

	writeFixtureTTY(t, root, "ttyUSB0", filepath.Join(root, "devices", "usb1", "1-1"), map[string]string{
		"idVendor":     "0403",
		"idProduct":    "6001",
		"serial":       "FT123456",
		"manufacturer": "FTDI",
		// no product file: field must default to Unknown
	})
	writeFixtureTTY(t, root, "ttyACM0", filepath.Join(root, "devices", "usb1", "1-2"), map[string]string{
		"idVendor":     "2341",
		"idProduct":    "0043",
		"serial":       "85736323",
		"manufacturer": "Arduino",
		"product":      "Uno",
	})

	// Platform UART: resolves outside any usb path, must be excluded
	writeFixtureTTY(t, root, "ttyS0", filepath.Join(root, "devices", "platform", "serial8250"), nil)

	// Virtual terminal: no device symlink at all, must be excluded
	if err := os.MkdirAll(filepath.Join(sys, "tty1"), 0o755); err != nil {
		t.Fatal(err)
	}

	ports := availablePortsFrom(sys, "/dev")

	if len(ports) != 2 {
		t.Fatalf("Expected 2 USB ports, got %d: %+v", len(ports), ports)
	}

	// Sorted ascending by path
	if ports[0].Path != "/dev/ttyACM0" || ports[1].Path != "/dev/ttyUSB0" {
		t.Errorf("Ports not sorted by path: %s, %s", ports[0].Path, ports[1].Path)
	}

	acm := ports[0]
	if acm.Type != DeviceTypeUSB {
		t.Errorf("Expected type USB, got %s", acm.Type)
	}
	if acm.VendorID != "2341" || acm.ProductID != "0043" {
		t.Errorf("Unexpected VID/PID: %s/%s", acm.VendorID, acm.ProductID)
	}
	if acm.Manufacturer != "Arduino" || acm.Product != "Uno" {
		t.Errorf("Unexpected manufacturer/product: %s/%s", acm.Manufacturer, acm.Product)
	}
	if acm.SerialNumber != "85736323" {
		t.Errorf("Unexpected serial number: %s", acm.SerialNumber)
	}

	usb := ports[1]
	if usb.Manufacturer != "FTDI" {
		t.Errorf("Unexpected manufacturer: %s", usb.Manufacturer)
	}
	if usb.Product != unknownField {
		t.Errorf("Expected missing product to default to Unknown, got %s", usb.Product)
	}
}

func TestAvailablePortsFromMissingSysfs(t *testing.T) {
	ports := availablePortsFrom(filepath.Join(t.TempDir(), "does-not-exist"), "/dev")
	if len(ports) != 0 {
		t.Errorf("Expected empty result for missing sysfs, got %d", len(ports))
	}
}

func TestNewDescriptorDefaults(t *testing.T) {
	d := newDescriptor("/dev/ttyUSB0")

	if d.Path != "/dev/ttyUSB0" {
		t.Errorf("Unexpected path: %s", d.Path)
	}
	for field, value := range map[string]string{
		"Type":         d.Type,
		"VendorID":     d.VendorID,
		"ProductID":    d.ProductID,
		"SerialNumber": d.SerialNumber,
		"Manufacturer": d.Manufacturer,
		"Product":      d.Product,
	} {
		if value != unknownField {
			t.Errorf("Expected %s to default to Unknown, got %s", field, value)
		}
	}
}
