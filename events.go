package serialport

// Message is one complete newline-delimited frame read from a port,
// carrying the raw bytes including the delimiter.
type Message struct {
	Port string
	Data []byte
	Size int
}

// Sink receives asynchronous notifications from the manager and its
// background readers. Implementations must not block for long: events
// are delivered from the reader goroutine and from write callers.
type Sink interface {
	// Message is called once per completed frame.
	Message(msg Message)
	// Disconnected is called when a write fails or when duplicating a
	// handle for reading fails, with a human-readable description.
	Disconnected(port, reason string)
}

// Event is the union of both notification kinds, delivered on a single
// channel by ChanSink for select-based consumers.
type Event struct {
	Port         string
	Data         []byte
	Size         int
	Disconnected bool
	Reason       string
}

// ChanSink adapts the Sink interface to a buffered channel. Events are
// dropped rather than blocking the reader when the consumer falls
// behind.
type ChanSink struct {
	C chan Event
}

// NewChanSink creates a ChanSink with the given buffer size
func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{C: make(chan Event, buffer)}
}

func (s *ChanSink) Message(msg Message) {
	select {
	case s.C <- Event{Port: msg.Port, Data: msg.Data, Size: msg.Size}:
	default:
	}
}

func (s *ChanSink) Disconnected(port, reason string) {
	select {
	case s.C <- Event{Port: port, Disconnected: true, Reason: reason}:
	default:
	}
}

// discardSink is the default sink when none is configured
type discardSink struct{}

func (discardSink) Message(Message)             {}
func (discardSink) Disconnected(string, string) {}
