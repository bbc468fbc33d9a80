package httpserver

import (
	"slices"

	"github.com/Skotchmaster/shopledger/internal/models"
)

// cloneOrder copies an order out of the ledger so it can be encoded after
// the lock is released.
func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Details = slices.Clone(o.Details)
	return &c
}
