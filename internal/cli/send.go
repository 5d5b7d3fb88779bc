package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	serialport "github.com/allbin/go-serialport"
)

var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send data to a serial port",
	Long: `Send data to a serial port and report the number of bytes written.

Data can be provided as a command line argument or piped on stdin:
  serialport send "AT+GMR" /dev/ttyUSB0 --newline
  echo "test" | serialport send /dev/ttyUSB0
  serialport send "48656c6c6f" /dev/ttyUSB0 --hex`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data, port string

		if len(args) == 2 {
			data = args[0]
			port = args[1]
		} else {
			port = args[0]
			stdin, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			data = strings.TrimRight(string(stdin), "\r\n")
		}

		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")

		mgr := serialport.NewManager()
		if err := mgr.OpenPort(port, portConfig()); err != nil {
			return err
		}
		defer mgr.ForceClose(port)

		var n int
		var err error
		if hexMode {
			payload, derr := hex.DecodeString(strings.ReplaceAll(data, " ", ""))
			if derr != nil {
				return fmt.Errorf("invalid hex data: %w", derr)
			}
			n, err = mgr.WriteBinary(port, payload)
		} else {
			if addNewline {
				data += "\n"
			}
			n, err = mgr.Write(port, data)
		}
		if err != nil {
			return err
		}

		successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
		fmt.Printf("%s Sent %d bytes to %s\n", successStyle.Render("✓"), n, port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g., '48656c6c6f' for 'Hello')")
}
