package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/shopledger/pkg/middleware/auth"
)

type Deps struct {
	LedgerHandler    *LedgerHTTP
	InventoryHandler *InventoryHTTP
	JWTSecret        []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAdminMiddleware(d.JWTSecret)

	l := e.Group("/ledger")
	l.POST("/users", d.LedgerHandler.CreateUser)
	l.GET("/users/:id", d.LedgerHandler.GetUser)
	l.GET("/products", d.LedgerHandler.GetProducts)
	l.GET("/products/:id", d.LedgerHandler.GetProduct)
	l.POST("/orders", d.LedgerHandler.CreateOrder)
	l.GET("/orders/:id", d.LedgerHandler.GetOrder)
	l.POST("/orders/:id/payment", d.LedgerHandler.ProcessPayment)
	l.POST("/products", d.LedgerHandler.CreateProduct, authMW.RequireAdmin)
	l.PATCH("/orders/:id/status", d.LedgerHandler.UpdateOrderStatus, authMW.RequireAdmin)

	inv := e.Group("/inventory")
	inv.GET("/products", d.InventoryHandler.ListProducts)
	inv.POST("/orders", d.InventoryHandler.ProcessOrders)
	inv.POST("/products", d.InventoryHandler.AddProduct, authMW.RequireAdmin)
	inv.POST("/restock", d.InventoryHandler.Restock, authMW.RequireAdmin)
}
