package httpserver

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopledger/internal/events"
	"github.com/Skotchmaster/shopledger/internal/inventory"
	"github.com/Skotchmaster/shopledger/internal/transport"
	"github.com/Skotchmaster/shopledger/internal/util"
	"github.com/Skotchmaster/shopledger/pkg/logging"
)

// InventoryHTTP owns the product map handed to the inventory processor and
// serializes access to it.
type InventoryHTTP struct {
	mu       sync.Mutex
	products map[int]*inventory.Product

	Publisher events.AlertPublisher
	Threshold int
}

func NewInventoryHTTP(pub events.AlertPublisher, threshold int) *InventoryHTTP {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &InventoryHTTP{
		products:  make(map[int]*inventory.Product),
		Publisher: pub,
		Threshold: threshold,
	}
}

// locked runs fn with mu held; a panic in fn still releases it.
func (h *InventoryHTTP) locked(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

func (h *InventoryHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.add_product")

	var req transport.InventoryProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID < 1 {
		l.Warn("add_product_error", "status", 400, "reason", "id must be > 0")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be > 0")
	}

	var exists bool
	h.locked(func() {
		if _, exists = h.products[req.ID]; !exists {
			h.products[req.ID] = &inventory.Product{ID: req.ID, Name: req.Name, Stock: req.Stock}
		}
	})

	if exists {
		l.Warn("add_product_error", "status", 409, "reason", "product already exists", "product_id", req.ID)
		return echo.NewHTTPError(http.StatusConflict, "product already exists")
	}

	l.Info("add_product_success", "product_id", req.ID)
	return c.JSON(http.StatusCreated, inventory.Product{ID: req.ID, Name: req.Name, Stock: req.Stock})
}

func (h *InventoryHTTP) ListProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "inventory.list_products")

	var out []inventory.Product
	h.locked(func() {
		out = make([]inventory.Product, 0, len(h.products))
		for _, p := range h.products {
			out = append(out, *p)
		}
	})

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	l.Info("list_products_success", "products", len(out))
	return c.JSON(http.StatusOK, out)
}

// ProcessOrders runs the batch and publishes whatever alerts it produced,
// including those gathered before a failure.
func (h *InventoryHTTP) ProcessOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.process_orders")

	threshold := util.ParseIntDefault(c.QueryParam("threshold"), h.Threshold)

	var req transport.ProcessOrdersRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("process_orders_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var (
		alerts []inventory.Alert
		err    error
	)
	h.locked(func() {
		alerts, err = inventory.ProcessOrders(h.products, req.Orders, threshold)
	})

	h.publish(ctx, threshold, alerts)

	if err != nil {
		l.Warn("process_orders_error", "status", statusFor(err), "error", err, "alerts", len(alerts))
		return echo.NewHTTPError(statusFor(err), err.Error())
	}

	if alerts == nil {
		alerts = []inventory.Alert{}
	}
	l.Info("process_orders_success", "orders", len(req.Orders), "alerts", len(alerts))
	return c.JSON(http.StatusOK, transport.ProcessOrdersResponse{Alerts: alerts})
}

func (h *InventoryHTTP) Restock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.restock")

	var req transport.RestockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("restock_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var err error
	h.locked(func() {
		err = inventory.RestockItems(h.products, req.Items)
	})

	if err != nil {
		l.Warn("restock_error", "status", statusFor(err), "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}

	l.Info("restock_success", "items", len(req.Items))
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHTTP) publish(ctx context.Context, threshold int, alerts []inventory.Alert) {
	if len(alerts) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Publisher.PublishAlerts(ctx, threshold, alerts); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err, "alerts", len(alerts))
	}
}
