// Command inventory processes a batch of orders against three products,
// prints low stock alerts, restocks and prints the final levels. Failures
// are reported and the run continues.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/Skotchmaster/shopledger/internal/inventory"
	"github.com/Skotchmaster/shopledger/pkg/config"
	"github.com/Skotchmaster/shopledger/pkg/logging"
)

func main() {
	logger := logging.NewWithWriter(os.Stderr, config.EnvDefault("LOG_LEVEL", "info"))
	run(os.Stdout, logger)
}

func run(w io.Writer, logger *slog.Logger) {
	products := map[int]*inventory.Product{
		1: {ID: 1, Name: "Book", Stock: 50},
		2: {ID: 2, Name: "Pen", Stock: 100},
		3: {ID: 3, Name: "Notebook", Stock: 30},
	}

	orders := []inventory.OrderRequest{
		{ID: 1, ProductID: 1, Quantity: 20},
		{ID: 2, ProductID: 2, Quantity: 50},
		{ID: 3, ProductID: 3, Quantity: 25},
	}

	alerts, err := inventory.ProcessOrders(products, orders, inventory.DefaultThreshold)
	if err != nil {
		logger.Warn("process_orders_error", "error", err)
		fmt.Fprintf(w, "Error processing orders: %v\n", err)
	} else {
		fmt.Fprintln(w, "Orders processed successfully")
		if len(alerts) > 0 {
			fmt.Fprintln(w, "Restocking alerts:")
			for _, a := range alerts {
				fmt.Fprintf(w, "Product %s (ID: %d) has low stock: %d\n", a.Name, a.ProductID, a.Stock)
			}
		}
	}

	restocks := []inventory.Restock{{ProductID: 1, Quantity: 30}, {ProductID: 3, Quantity: 20}}
	if err := inventory.RestockItems(products, restocks); err != nil {
		logger.Warn("restock_error", "error", err)
		fmt.Fprintf(w, "Error restocking items: %v\n", err)
	} else {
		fmt.Fprintln(w, "Items restocked successfully")
	}

	ids := make([]int, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Fprintln(w, "Updated stock levels:")
	for _, id := range ids {
		fmt.Fprintf(w, "%s: %d\n", products[id].Name, products[id].Stock)
	}
}
