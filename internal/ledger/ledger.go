// Package ledger keeps users, products, orders and payments in memory and
// validates every mutation against them.
//
// A Ledger is not safe for concurrent use; callers serialize access.
package ledger

import (
	"strings"
	"time"

	"github.com/Skotchmaster/shopledger/internal/domain"
	"github.com/Skotchmaster/shopledger/internal/models"
)

// LineItem is one requested product line of a new order.
type LineItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type Ledger struct {
	// Now stamps payments. Defaults to time.Now.
	Now func() time.Time

	users    map[int]*models.User
	products map[int]*models.Product
	orders   map[int]*models.Order
	payments map[int]*models.Payment

	nextUserID        int
	nextProductID     int
	nextOrderID       int
	nextPaymentID     int
	nextOrderDetailID int
}

func New() *Ledger {
	return &Ledger{
		Now:               time.Now,
		users:             make(map[int]*models.User),
		products:          make(map[int]*models.Product),
		orders:            make(map[int]*models.Order),
		payments:          make(map[int]*models.Payment),
		nextUserID:        1,
		nextProductID:     1,
		nextOrderID:       1,
		nextPaymentID:     1,
		nextOrderDetailID: 1,
	}
}

func (l *Ledger) CreateUser(name, email string) *models.User {
	user := &models.User{ID: l.nextUserID, Name: name, Email: email}
	l.users[user.ID] = user
	l.nextUserID++
	return user
}

// CreateProduct stores a product as given; price and stock are not checked.
func (l *Ledger) CreateProduct(name string, price float64, stock int) *models.Product {
	product := &models.Product{ID: l.nextProductID, Name: name, Price: price, Stock: stock}
	l.products[product.ID] = product
	l.nextProductID++
	return product
}

// CreateOrder reserves an order id, then walks items in order, taking stock
// and accumulating the total for each. The order is stored only if every item
// is accepted. Stock taken by earlier items is kept when a later item fails.
func (l *Ledger) CreateOrder(userID int, items []LineItem) (*models.Order, error) {
	if _, ok := l.users[userID]; !ok {
		return nil, domain.NotFound("User not found")
	}

	order := &models.Order{
		ID:      l.nextOrderID,
		UserID:  userID,
		Status:  models.OrderStatusPending,
		Details: make([]models.OrderDetail, 0, len(items)),
	}
	l.nextOrderID++

	var total float64
	for _, item := range items {
		product, ok := l.products[item.ProductID]
		if !ok {
			return nil, domain.NotFound("Product with id %d not found", item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, domain.InsufficientStock(product.Name)
		}

		product.Stock -= item.Quantity
		total += product.Price * float64(item.Quantity)

		order.AddDetail(models.OrderDetail{
			ID:        l.nextOrderDetailID,
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
		l.nextOrderDetailID++
	}

	order.Total = total
	l.orders[order.ID] = order
	return order, nil
}

// ProcessPayment records a payment for the exact order total and marks the
// order paid. The amount is compared with ==, without tolerance.
func (l *Ledger) ProcessPayment(orderID int, amount float64) (*models.Payment, error) {
	order, ok := l.orders[orderID]
	if !ok {
		return nil, domain.NotFound("Order not found")
	}
	if order.Total != amount {
		return nil, domain.Errorf(domain.ErrAmountMismatch, "Payment amount does not match order total")
	}

	payment := &models.Payment{
		ID:      l.nextPaymentID,
		OrderID: orderID,
		Amount:  amount,
		Date:    l.now(),
	}
	l.nextPaymentID++
	l.payments[payment.ID] = payment

	order.Status = models.OrderStatusPaid
	return payment, nil
}

// UpdateOrderStatus sets any valid status regardless of the current one.
func (l *Ledger) UpdateOrderStatus(orderID int, status string) error {
	order, ok := l.orders[orderID]
	if !ok {
		return domain.NotFound("Order not found")
	}

	s := models.OrderStatus(status)
	if !s.Valid() {
		names := make([]string, len(models.OrderStatuses))
		for i, v := range models.OrderStatuses {
			names[i] = string(v)
		}
		return domain.Errorf(domain.ErrInvalidStatus, "Invalid status. Must be one of %s", strings.Join(names, ", "))
	}

	order.Status = s
	return nil
}

func (l *Ledger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}
