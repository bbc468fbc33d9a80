package ledger

import (
	"github.com/Skotchmaster/shopledger/internal/domain"
	"github.com/Skotchmaster/shopledger/internal/models"
)

func (l *Ledger) User(id int) (*models.User, error) {
	if u, ok := l.users[id]; ok {
		return u, nil
	}
	return nil, domain.NotFound("User not found")
}

func (l *Ledger) Product(id int) (*models.Product, error) {
	if p, ok := l.products[id]; ok {
		return p, nil
	}
	return nil, domain.NotFound("Product with id %d not found", id)
}

func (l *Ledger) Order(id int) (*models.Order, error) {
	if o, ok := l.orders[id]; ok {
		return o, nil
	}
	return nil, domain.NotFound("Order not found")
}

func (l *Ledger) Payment(id int) (*models.Payment, error) {
	if p, ok := l.payments[id]; ok {
		return p, nil
	}
	return nil, domain.NotFound("Payment not found")
}

// Products returns every product in id order.
func (l *Ledger) Products() []*models.Product {
	return inIDOrder(l.products, l.nextProductID)
}

// Orders returns every stored order in id order. Ids reserved by failed
// CreateOrder calls are skipped.
func (l *Ledger) Orders() []*models.Order {
	return inIDOrder(l.orders, l.nextOrderID)
}

func (l *Ledger) Payments() []*models.Payment {
	return inIDOrder(l.payments, l.nextPaymentID)
}

func inIDOrder[T any](m map[int]*T, next int) []*T {
	out := make([]*T, 0, len(m))
	for id := 1; id < next; id++ {
		if v, ok := m[id]; ok {
			out = append(out, v)
		}
	}
	return out
}
