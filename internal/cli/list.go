package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	serialport "github.com/allbin/go-serialport"
)

const (
	columnPath         = "path"
	columnManufacturer = "manufacturer"
	columnProduct      = "product"
	columnVID          = "vid"
	columnPID          = "pid"
	columnSerial       = "serial"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attached USB serial ports",
	Long: `List attached USB serial adapters with their sysfs metadata.

Only USB-backed devices are shown; platform UARTs and virtual terminals
are excluded. Fields the kernel does not expose are reported as
"Unknown".`,
	Run: func(cmd *cobra.Command, args []string) {
		ports := serialport.AvailablePorts()
		if len(ports) == 0 {
			fmt.Println("No USB serial ports found")
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		if tableFormat {
			renderTable(ports)
		} else {
			renderSimple(ports)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "T", false, "Display output in a styled table format")
}

func renderSimple(ports []serialport.PortDescriptor) {
	pathStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	for _, d := range ports {
		fmt.Printf("%s  %s\n",
			pathStyle.Render(d.Path),
			metaStyle.Render(fmt.Sprintf("%s %s (VID=%s PID=%s Serial=%s)",
				d.Manufacturer, d.Product, d.VendorID, d.ProductID, d.SerialNumber)),
		)
	}
}

func renderTable(ports []serialport.PortDescriptor) {
	columns := []table.Column{
		table.NewColumn(columnPath, "Path", 18),
		table.NewColumn(columnManufacturer, "Manufacturer", 16),
		table.NewColumn(columnProduct, "Product", 20),
		table.NewColumn(columnVID, "VID", 6),
		table.NewColumn(columnPID, "PID", 6),
		table.NewColumn(columnSerial, "Serial", 14),
	}

	rows := make([]table.Row, 0, len(ports))
	for _, d := range ports {
		rows = append(rows, table.NewRow(table.RowData{
			columnPath:         d.Path,
			columnManufacturer: d.Manufacturer,
			columnProduct:      d.Product,
			columnVID:          d.VendorID,
			columnPID:          d.ProductID,
			columnSerial:       d.SerialNumber,
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		BorderRounded()

	fmt.Println(t.View())
}
