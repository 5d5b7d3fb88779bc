// Package metrics exposes Prometheus instrumentation for the serial
// port manager via the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RxMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "serialport_rx_messages_total",
		Help: "Total newline-delimited messages framed from serial reads.",
	})
	RxBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "serialport_rx_bytes_total",
		Help: "Total bytes read by background readers.",
	})
	TxBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "serialport_tx_bytes_total",
		Help: "Total bytes written to serial ports.",
	})
	DisconnectEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "serialport_disconnect_events_total",
		Help: "Total disconnect notifications emitted to the sink.",
	})
	ReaderErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "serialport_reader_errors_total",
		Help: "Total background readers terminated by an I/O error.",
	})
	OpenPorts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "serialport_open_ports",
		Help: "Current number of open serial ports.",
	})
)

// Handler returns an HTTP handler serving the default registry, for
// applications that want to expose /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
