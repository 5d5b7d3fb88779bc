// Package serialport manages a set of concurrently open serial device
// connections on Linux, providing safe, cancellable streaming reads and
// synchronous writes against each of them.
//
// The package centers on a Manager holding a registry of open ports.
// Each open port may have one background reader that frames the
// incoming byte stream into newline-delimited messages and emits them
// asynchronously to a sink.
//
// # Basic Usage
//
// Create a manager, open a port and start streaming messages:
//
//	sink := serialport.NewChanSink(64)
//	mgr := serialport.NewManager(serialport.WithSink(sink))
//
//	cfg := serialport.DefaultConfig()
//	cfg.BaudRate = 115200
//	if err := mgr.OpenPort("/dev/ttyUSB0", cfg); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.ClosePort("/dev/ttyUSB0")
//
//	if err := mgr.StartRead("/dev/ttyUSB0", serialport.ReadOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//	for ev := range sink.C {
//	    if ev.Disconnected {
//	        log.Println("disconnected:", ev.Reason)
//	        continue
//	    }
//	    fmt.Printf("%s: %q\n", ev.Port, ev.Data)
//	}
//
// Writes are synchronous and return the number of bytes written:
//
//	n, err := mgr.Write("/dev/ttyUSB0", "AT+GMR\n")
//	n, err = mgr.WriteBinary("/dev/ttyUSB0", []byte{0x01, 0x02})
//
// # Configuration
//
// Config fields other than BaudRate have lenient defaults: data bits 8,
// stop bits 2, no parity, no flow control, 200ms read timeout.
// Unrecognized enum values decode to the type's default rather than
// erroring:
//
//	cfg := serialport.Config{
//	    BaudRate:    9600,
//	    Parity:      serialport.ParityFromString("Even"),
//	    FlowControl: serialport.FlowControlFromString("Hardware"),
//	}
//
// # Cancellation
//
// Background readers are cancelled cooperatively: CancelRead (and
// ClosePort, CloseAll, ForceClose) signal the reader, which observes
// the signal between device read attempts. Termination therefore lags
// by at most one read timeout interval. Starting a read while one is
// active is a no-op, as is cancelling when no reader runs.
//
// # Port Discovery
//
// AvailablePorts lists attached USB serial adapters with their sysfs
// metadata:
//
//	for _, d := range serialport.AvailablePorts() {
//	    fmt.Printf("%s: %s %s (VID=%s PID=%s Serial=%s)\n",
//	        d.Path, d.Manufacturer, d.Product, d.VendorID, d.ProductID, d.SerialNumber)
//	}
//
// # Events and Error Handling
//
// Command results are typed errors checked with errors.Is:
//
//	var (
//	    ErrNotFound    // port is not open
//	    ErrAlreadyOpen // port is already open
//	    ErrOpen        // physical device could not be opened
//	    ErrClone       // handle duplication failed at read start
//	    ErrWrite       // synchronous write failed
//	)
//
// Disconnect notifications are emitted to the sink when a write fails
// or when duplicating a handle for reading fails. A device fault in the
// middle of an active read terminates that reader silently; the loss is
// observable as the stream stopping.
//
// # USB Device Management
//
// Hung adapters can be reset through the usbreset utility:
//
//	err := serialport.ResetUSBDevice("/dev/ttyUSB0")
//	err = serialport.ResetUSBDeviceBySerial("FT123456")
//
// # Platform Support
//
// The package targets Linux: ports are configured through termios via
// golang.org/x/sys/unix, and discovery and USB metadata come from
// sysfs.
package serialport
