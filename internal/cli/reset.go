package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	serialport "github.com/allbin/go-serialport"
)

var resetCmd = &cobra.Command{
	Use:   "reset <port>",
	Short: "USB-reset a hung serial adapter",
	Long: `Perform a USB-level reset of the adapter behind a serial port.

Requires the usbreset utility (usbutils package) and appropriate
permissions. With --serial the adapter is located by its serial number
instead of its device path, which survives re-enumeration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serialNumber, _ := cmd.Flags().GetString("serial")

		switch {
		case serialNumber != "":
			if err := serialport.ResetUSBDeviceBySerial(serialNumber); err != nil {
				return err
			}
			fmt.Printf("Reset device with serial %s\n", serialNumber)
		case len(args) == 1:
			if err := serialport.ResetUSBDevice(args[0]); err != nil {
				return err
			}
			fmt.Printf("Reset %s\n", args[0])
		default:
			return fmt.Errorf("either a port path or --serial is required")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().StringP("serial", "s", "", "Locate the adapter by USB serial number")
}
