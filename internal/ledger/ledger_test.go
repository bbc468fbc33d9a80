package ledger

import (
	"testing"
	"time"

	"github.com/Skotchmaster/shopledger/internal/domain"
	"github.com/Skotchmaster/shopledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	l      *Ledger
	user   *models.User
	laptop *models.Product
	mouse  *models.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	l := New()
	return fixture{
		l:      l,
		user:   l.CreateUser("Alice", "alice@example.com"),
		laptop: l.CreateProduct("Laptop", 999.99, 10),
		mouse:  l.CreateProduct("Mouse", 29.99, 50),
	}
}

func TestLedger_IDsAreSequentialPerEntity(t *testing.T) {
	t.Parallel()

	l := New()
	for i := 1; i <= 5; i++ {
		u := l.CreateUser("user", "user@example.com")
		p := l.CreateProduct("product", 1, 1)
		assert.Equal(t, i, u.ID)
		assert.Equal(t, i, p.ID)
	}

	got, err := l.User(3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)
}

func TestLedger_CreateProduct_AcceptsNegativeValues(t *testing.T) {
	t.Parallel()

	l := New()
	p := l.CreateProduct("broken", -1, -5)

	assert.Equal(t, -1.0, p.Price)
	assert.Equal(t, -5, p.Stock)
}

func TestLedger_CreateOrder_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	order, err := f.l.CreateOrder(f.user.ID, []LineItem{
		{ProductID: f.laptop.ID, Quantity: 1},
		{ProductID: f.mouse.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, order.ID)
	assert.Equal(t, f.user.ID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 1059.97, order.Total, 1e-9)

	require.Len(t, order.Details, 2)
	assert.Equal(t, models.OrderDetail{ID: 1, OrderID: 1, ProductID: f.laptop.ID, Quantity: 1}, order.Details[0])
	assert.Equal(t, models.OrderDetail{ID: 2, OrderID: 1, ProductID: f.mouse.ID, Quantity: 2}, order.Details[1])

	assert.Equal(t, 9, f.laptop.Stock)
	assert.Equal(t, 48, f.mouse.Stock)

	stored, err := f.l.Order(order.ID)
	require.NoError(t, err)
	assert.Same(t, order, stored)
}

func TestLedger_CreateOrder_TotalIsNotRecomputed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	order, err := f.l.CreateOrder(f.user.ID, []LineItem{{ProductID: f.mouse.ID, Quantity: 1}})
	require.NoError(t, err)

	f.mouse.Price = 1000
	assert.Equal(t, 29.99, order.Total)
}

func TestLedger_CreateOrder_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  int
		items   []LineItem
		kind    error
		message string
	}{
		{
			name:    "unknown user",
			userID:  42,
			items:   []LineItem{{ProductID: 1, Quantity: 1}},
			kind:    domain.ErrNotFound,
			message: "User not found",
		},
		{
			name:    "unknown product",
			userID:  1,
			items:   []LineItem{{ProductID: 9, Quantity: 1}},
			kind:    domain.ErrNotFound,
			message: "Product with id 9 not found",
		},
		{
			name:    "insufficient stock",
			userID:  1,
			items:   []LineItem{{ProductID: 1, Quantity: 11}},
			kind:    domain.ErrInsufficientStock,
			message: "Insufficient stock for product Laptop",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			order, err := f.l.CreateOrder(tt.userID, tt.items)
			require.Error(t, err)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.kind)
			assert.EqualError(t, err, tt.message)

			assert.Equal(t, 10, f.laptop.Stock)
			assert.Equal(t, 50, f.mouse.Stock)
			assert.Empty(t, f.l.Orders())
		})
	}
}

func TestLedger_CreateOrder_KeepsEarlierDecrementsOnFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.l.CreateOrder(f.user.ID, []LineItem{
		{ProductID: f.mouse.ID, Quantity: 5},
		{ProductID: f.laptop.ID, Quantity: 100},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 45, f.mouse.Stock)
	assert.Equal(t, 10, f.laptop.Stock)
	assert.Empty(t, f.l.Orders())

	// the failed call consumed order id 1 and detail id 1
	order, err := f.l.CreateOrder(f.user.ID, []LineItem{{ProductID: f.mouse.ID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, order.ID)
	assert.Equal(t, 2, order.Details[0].ID)
	assert.Len(t, f.l.Orders(), 1)
}

func TestLedger_CreateOrder_EmptyItems(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	order, err := f.l.CreateOrder(f.user.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, order.Total)
	assert.Empty(t, order.Details)
}

func TestLedger_ProcessPayment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.l.Now = func() time.Time { return stamp }

	order, err := f.l.CreateOrder(f.user.ID, []LineItem{
		{ProductID: f.laptop.ID, Quantity: 1},
		{ProductID: f.mouse.ID, Quantity: 2},
	})
	require.NoError(t, err)

	_, err = f.l.ProcessPayment(order.ID, order.Total+0.01)
	require.ErrorIs(t, err, domain.ErrAmountMismatch)
	assert.EqualError(t, err, "Payment amount does not match order total")
	assert.Equal(t, models.OrderStatusPending, order.Status)

	_, err = f.l.ProcessPayment(99, order.Total)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Order not found")

	first, err := f.l.ProcessPayment(order.ID, order.Total)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, order.ID, first.OrderID)
	assert.Equal(t, order.Total, first.Amount)
	assert.Equal(t, stamp, first.Date)
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	second, err := f.l.ProcessPayment(order.ID, order.Total)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Len(t, f.l.Payments(), 2)
}

func TestLedger_UpdateOrderStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	order, err := f.l.CreateOrder(f.user.ID, []LineItem{{ProductID: f.mouse.ID, Quantity: 1}})
	require.NoError(t, err)

	for _, s := range []string{"shipped", "pending", "delivered", "cancelled", "paid"} {
		require.NoError(t, f.l.UpdateOrderStatus(order.ID, s))
		assert.Equal(t, models.OrderStatus(s), order.Status)
	}

	err = f.l.UpdateOrderStatus(order.ID, "lost")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.EqualError(t, err, "Invalid status. Must be one of pending, paid, shipped, delivered, cancelled")
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	err = f.l.UpdateOrderStatus(123, "paid")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_Lookups(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.l.User(2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := f.l.Product(f.mouse.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Name)

	_, err = f.l.Product(3)
	assert.EqualError(t, err, "Product with id 3 not found")

	_, err = f.l.Payment(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	products := f.l.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, "Mouse", products[1].Name)
}
