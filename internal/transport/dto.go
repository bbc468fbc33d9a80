package transport

import (
	"github.com/Skotchmaster/shopledger/internal/inventory"
	"github.com/Skotchmaster/shopledger/internal/ledger"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type CreateOrderRequest struct {
	UserID int               `json:"user_id"`
	Items  []ledger.LineItem `json:"items"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type InventoryProductRequest struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type ProcessOrdersRequest struct {
	Orders []inventory.OrderRequest `json:"orders"`
}

type ProcessOrdersResponse struct {
	Alerts []inventory.Alert `json:"alerts"`
}

type RestockRequest struct {
	Items []inventory.Restock `json:"items"`
}
