// Command orders walks an in-memory order registry through a short
// lifecycle: create, advance, cancel and list.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/utkarsh5026/asynckit/internal/cli"
	"github.com/utkarsh5026/asynckit/order"
)

func main() {
	configFile := flag.String("config", "", "Path to a config file")
	flag.Parse()

	_, log, err := cli.Bootstrap(*configFile)
	if err != nil {
		cli.Fail(err)
	}

	reg := order.NewRegistry()
	cli.SectionHeader("📦 ORDERS", "Create three orders and move them through their lifecycle")

	first := reg.Create([]string{"Laptop", "Mouse"}, "John Doe")
	second := reg.Create([]string{"Keyboard"}, "Jane Smith")
	third := reg.Create([]string{"Monitor", "HDMI cable"}, "Sam Lee")
	log.Info("orders created", "count", len(reg.All()))

	must(reg.SetStatus(second.ID, order.StatusProcessing))
	must(reg.SetStatus(third.ID, order.StatusShipped))

	cancel(reg, first.ID, "Customer request")
	cancel(reg, first.ID, "Duplicate request")
	cancel(reg, second.ID, "Out of stock")
	cancel(reg, third.ID, "Too late")
	cancel(reg, 99, "Unknown")

	fmt.Println()
	cli.ColorPrintLn(cli.Bold, "All orders:")
	render(reg.All())

	fmt.Println()
	cli.ColorPrintf(cli.Bold, "Cancelled orders: %d\n", len(reg.Cancelled()))
	render(reg.Cancelled())
}

func cancel(reg *order.Registry, id int, reason string) {
	ok, err := reg.Cancel(id, reason)
	switch {
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrCannotCancel):
		cli.ColorPrintf(cli.Red, "  ✗ order %d: %v\n", id, err)
	case err != nil:
		cli.Fail(err)
	case ok:
		cli.ColorPrintf(cli.Green, "  ✓ order %d cancelled: %s\n", id, reason)
	default:
		cli.ColorPrintf(cli.Yellow, "  • order %d was already cancelled\n", id)
	}
}

func render(orders []order.Order) {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.Itoa(o.ID),
			o.Customer,
			strings.Join(o.Items, ", "),
			string(o.Status),
			o.CancellationReason,
		})
	}

	if err := cli.Table(os.Stdout, []string{"ID", "Customer", "Items", "Status", "Reason"}, rows); err != nil {
		cli.ColorPrintLn(cli.Red, "Error in rendering orders table")
	}
}

func must(err error) {
	if err != nil {
		cli.Fail(err)
	}
}
