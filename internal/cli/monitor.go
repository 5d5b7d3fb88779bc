package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	serialport "github.com/allbin/go-serialport"
	"github.com/allbin/go-serialport/internal/tui"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor <port>",
	Short: "Interactive monitor for a serial port",
	Long: `Open a serial port and monitor it interactively.

Incoming data is framed on newlines and displayed as it arrives, with
timestamps and an optional hex view. Typed lines are sent to the device
on enter.

Example usage:
  serialport monitor /dev/ttyUSB0
  serialport monitor /dev/ttyUSB0 --baud 9600 --parity Even`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := args[0]
		config := portConfig()

		sink := serialport.NewChanSink(128)
		mgr := serialport.NewManager(serialport.WithSink(sink))

		if err := mgr.OpenPort(port, config); err != nil {
			return err
		}
		defer mgr.CloseAll()

		// Drop stale queued data so the session starts clean
		if err := mgr.Flush(port); err != nil {
			return err
		}

		if err := mgr.StartRead(port, serialport.ReadOptions{}); err != nil {
			return err
		}

		p := tea.NewProgram(tui.NewMonitor(port, config, mgr), tea.WithAltScreen())

		done := make(chan struct{})
		go func() {
			for {
				select {
				case ev := <-sink.C:
					p.Send(tui.EventMsg{Event: ev})
				case <-done:
					return
				}
			}
		}()

		_, err := p.Run()
		close(done)
		return err
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
