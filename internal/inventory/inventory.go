// Package inventory applies order requests and restocks to a caller-owned
// product map and reports products that run low.
package inventory

import (
	"github.com/Skotchmaster/shopledger/internal/domain"
)

const DefaultThreshold = 10

type Product struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type OrderRequest struct {
	ID        int `json:"id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type Restock struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Alert reports a product whose stock fell below the threshold.
type Alert struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// ProcessOrders takes stock for each order in sequence. Every decrement is
// visible to the orders after it. Processing stops at the first failure and
// earlier decrements stay applied; the alerts gathered up to that point are
// returned with the error.
func ProcessOrders(products map[int]*Product, orders []OrderRequest, threshold int) ([]Alert, error) {
	var alerts []Alert

	for _, order := range orders {
		product, ok := products[order.ProductID]
		if !ok {
			return alerts, domain.NotFound("Product with id %d not found", order.ProductID)
		}
		if product.Stock < order.Quantity {
			return alerts, domain.InsufficientStock(product.Name)
		}

		product.Stock -= order.Quantity

		if product.Stock < threshold {
			alerts = append(alerts, Alert{ProductID: product.ID, Name: product.Name, Stock: product.Stock})
		}
	}

	return alerts, nil
}

// RestockItems adds stock in list order and stops at the first unknown
// product, keeping the increments already made.
func RestockItems(products map[int]*Product, restocks []Restock) error {
	for _, r := range restocks {
		product, ok := products[r.ProductID]
		if !ok {
			return domain.NotFound("Product with id %d not found", r.ProductID)
		}
		product.Stock += r.Quantity
	}
	return nil
}
