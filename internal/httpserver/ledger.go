package httpserver

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopledger/internal/ledger"
	"github.com/Skotchmaster/shopledger/internal/models"
	"github.com/Skotchmaster/shopledger/internal/transport"
	"github.com/Skotchmaster/shopledger/internal/util"
	"github.com/Skotchmaster/shopledger/pkg/logging"
)

// LedgerHTTP serves a Ledger. Every call holds mu since the ledger itself
// is single-threaded.
type LedgerHTTP struct {
	mu     sync.Mutex
	Ledger *ledger.Ledger
}

func NewLedgerHTTP(l *ledger.Ledger) *LedgerHTTP {
	return &LedgerHTTP{Ledger: l}
}

// locked runs fn with mu held; a panic in fn still releases it.
func (h *LedgerHTTP) locked(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

func (h *LedgerHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	h.locked(func() {
		user = *h.Ledger.CreateUser(req.Name, req.Email)
	})

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *LedgerHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.get_user")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user models.User
	h.locked(func() {
		var u *models.User
		if u, err = h.Ledger.User(id); err == nil {
			user = *u
		}
	})

	if err != nil {
		l.Warn("get_user_error", "status", statusFor(err), "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

func (h *LedgerHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var product models.Product
	h.locked(func() {
		product = *h.Ledger.CreateProduct(req.Name, req.Price, req.Stock)
	})

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *LedgerHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var product models.Product
	h.locked(func() {
		var p *models.Product
		if p, err = h.Ledger.Product(id); err == nil {
			product = *p
		}
	})

	if err != nil {
		l.Warn("get_product_error", "status", statusFor(err), "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

func (h *LedgerHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.get_products")

	offset, limit := util.Calculate(
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize),
	)
	page := offset/limit + 1

	var (
		items []models.Product
		total int
	)
	h.locked(func() {
		all := h.Ledger.Products()
		total = len(all)
		from, to := util.Window(total, offset, limit)
		items = make([]models.Product, 0, to-from)
		for _, p := range all[from:to] {
			items = append(items, *p)
		}
	})

	l.Info("get_products_success", "page", page, "size", limit, "returned", len(items), "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    offset+limit < total,
		},
	})
}

func (h *LedgerHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var order *models.Order
	var err error
	h.locked(func() {
		if order, err = h.Ledger.CreateOrder(req.UserID, req.Items); err == nil {
			order = cloneOrder(order)
		}
	})

	if err != nil {
		l.Warn("create_order_error", "status", statusFor(err), "user_id", req.UserID, "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}

func (h *LedgerHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.get_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var order *models.Order
	h.locked(func() {
		if order, err = h.Ledger.Order(id); err == nil {
			order = cloneOrder(order)
		}
	})

	if err != nil {
		l.Warn("get_order_error", "status", statusFor(err), "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}
	return c.JSON(http.StatusOK, order)
}

func (h *LedgerHTTP) ProcessPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.process_payment")

	id, err := parseID(c)
	if err != nil {
		l.Warn("process_payment_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req transport.PaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("process_payment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var payment models.Payment
	h.locked(func() {
		var p *models.Payment
		if p, err = h.Ledger.ProcessPayment(id, req.Amount); err == nil {
			payment = *p
		}
	})

	if err != nil {
		l.Warn("process_payment_error", "status", statusFor(err), "order_id", id, "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}

	l.Info("process_payment_success", "order_id", id, "payment_id", payment.ID)
	return c.JSON(http.StatusCreated, payment)
}

func (h *LedgerHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ledger.update_order_status")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	h.locked(func() {
		err = h.Ledger.UpdateOrderStatus(id, req.Status)
	})

	if err != nil {
		l.Warn("update_status_error", "status", statusFor(err), "order_id", id, "error", err)
		return echo.NewHTTPError(statusFor(err), err.Error())
	}

	l.Info("update_status_success", "order_id", id, "order_status", req.Status)
	return c.NoContent(http.StatusNoContent)
}
