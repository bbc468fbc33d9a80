// Command ledger walks through a small order: two users, two products, one
// order paid in full and shipped. Any failure exits non-zero.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Skotchmaster/shopledger/internal/ledger"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("ledger demo: %v", err)
	}
}

func run(w io.Writer) error {
	l := ledger.New()

	alice := l.CreateUser("Alice", "alice@example.com")
	l.CreateUser("Bob", "bob@example.com")

	laptop := l.CreateProduct("Laptop", 999.99, 10)
	mouse := l.CreateProduct("Mouse", 29.99, 50)

	order, err := l.CreateOrder(alice.ID, []ledger.LineItem{
		{ProductID: laptop.ID, Quantity: 1},
		{ProductID: mouse.ID, Quantity: 2},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Order created: Total $%.2f\n", order.Total)

	payment, err := l.ProcessPayment(order.ID, order.Total)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Payment processed: $%.2f\n", payment.Amount)

	if err := l.UpdateOrderStatus(order.ID, "shipped"); err != nil {
		return err
	}
	stored, err := l.Order(order.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Order status updated: %s\n", stored.Status)

	fmt.Fprintf(w, "Laptop stock: %d\n", laptop.Stock)
	fmt.Fprintf(w, "Mouse stock: %d\n", mouse.Stock)
	return nil
}
