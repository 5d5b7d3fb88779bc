// Package cli implements the serialport command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	serialport "github.com/allbin/go-serialport"
	"github.com/allbin/go-serialport/internal/logging"
	"github.com/allbin/go-serialport/internal/metrics"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "serialport",
	Short: "Manage serial port connections with streaming reads",
	Long: `serialport manages serial device connections: it lists attached USB
adapters, opens ports with configurable framing parameters, streams
newline-delimited messages from them, and sends data back.

Port parameters (baud rate, data bits, parity, stop bits, flow control,
read timeout) can be given as flags, environment variables with the
SERIALPORT_ prefix, or a config file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Set(logging.New(viper.GetString("log-format"), logLevel(viper.GetString("log-level")), nil))

		if addr := viper.GetString("metrics-addr"); addr != "" {
			go serveMetrics(addr)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.serialport.yaml)")
	rootCmd.PersistentFlags().IntP("baud", "b", 115200, "baud rate")
	rootCmd.PersistentFlags().Int("data-bits", 8, "data bits: 5, 6, 7 or 8")
	rootCmd.PersistentFlags().Int("stop-bits", 2, "stop bits: 1 or 2")
	rootCmd.PersistentFlags().String("parity", "None", "parity: None, Odd or Even")
	rootCmd.PersistentFlags().StringP("flow-control", "f", "None", "flow control: None, Software or Hardware")
	rootCmd.PersistentFlags().DurationP("timeout", "t", 200*time.Millisecond, "per-byte read timeout")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9100)")

	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".serialport")
	}

	viper.SetEnvPrefix("SERIALPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// portConfig builds a port configuration from flags, environment and
// config file, applying the library's lenient decoding rules.
func portConfig() serialport.Config {
	return serialport.Config{
		BaudRate:    viper.GetInt("baud"),
		DataBits:    serialport.DataBitsFromInt(viper.GetInt("data-bits")),
		StopBits:    serialport.StopBitsFromInt(viper.GetInt("stop-bits")),
		Parity:      serialport.ParityFromString(viper.GetString("parity")),
		FlowControl: serialport.FlowControlFromString(viper.GetString("flow-control")),
		ReadTimeout: viper.GetDuration("timeout"),
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logging.L().Info("metrics_listen", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logging.L().Error("metrics_http_error", "error", err)
	}
}
