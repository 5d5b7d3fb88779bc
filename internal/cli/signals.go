package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	serialport "github.com/allbin/go-serialport"
)

var signalsCmd = &cobra.Command{
	Use:   "signals <port>",
	Short: "Show or set modem control signals",
	Long: `Show the modem control signal states of a serial port.

With --rts or --dtr the corresponding output line is set before the
states are read back:
  serialport signals /dev/ttyUSB0
  serialport signals /dev/ttyUSB0 --rts=true --dtr=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := serialport.Open(args[0], portConfig())
		if err != nil {
			return err
		}
		defer h.Close()

		m, ok := h.(serialport.ModemSignaler)
		if !ok {
			return fmt.Errorf("%s does not expose modem control signals", args[0])
		}

		if cmd.Flags().Changed("rts") {
			state, _ := cmd.Flags().GetBool("rts")
			if err := m.SetRTS(state); err != nil {
				return fmt.Errorf("setting RTS: %w", err)
			}
		}
		if cmd.Flags().Changed("dtr") {
			state, _ := cmd.Flags().GetBool("dtr")
			if err := m.SetDTR(state); err != nil {
				return fmt.Errorf("setting DTR: %w", err)
			}
		}

		signals, err := m.ModemSignals()
		if err != nil {
			return fmt.Errorf("reading modem signals: %w", err)
		}

		renderSignals(args[0], signals)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd)

	signalsCmd.Flags().Bool("rts", false, "Set the RTS output line before reading")
	signalsCmd.Flags().Bool("dtr", false, "Set the DTR output line before reading")
}

func renderSignals(port string, s serialport.ModemSignals) {
	onStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	state := func(v bool) string {
		if v {
			return onStyle.Render("ON")
		}
		return offStyle.Render("off")
	}

	fmt.Println(port)
	fmt.Printf("  RTS %s  DTR %s  CTS %s  DSR %s  DCD %s  RI %s\n",
		state(s.RTS), state(s.DTR), state(s.CTS), state(s.DSR), state(s.DCD), state(s.RI))
}
