package http

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health      *Handler
	Products    *ProductHandler
	Assignments *AssignmentHandler
	Requests    *RequestHandler
	Audit       *AuditHandler
}

// Guard builds the permission check for one route; nil disables checks.
type Guard func(entity, action string) echo.MiddlewareFunc

// RegisterRoutes mounts the API. mw runs on every route except /health.
func RegisterRoutes(e *echo.Echo, h Handlers, guard Guard, mw ...echo.MiddlewareFunc) {
	if guard == nil {
		guard = func(string, string) echo.MiddlewareFunc {
			return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
		}
	}

	e.GET("/health", h.Health.Health)

	api := e.Group("", mw...)

	api.POST("/urunler", h.Products.Create, guard("urun", "create"))
	api.GET("/urunler", h.Products.List, guard("urun", "read"))
	api.GET("/urunler/:id", h.Products.Get, guard("urun", "read"))
	api.GET("/urunler/:id/zimmet", h.Assignments.ActiveForProduct, guard("zimmet", "read"))
	api.PUT("/urunler/:id/durum", h.Products.SetStatus, guard("urun", "status"))
	api.DELETE("/urunler/:id", h.Products.Delete, guard("urun", "delete"))

	api.POST("/zimmetler", h.Assignments.Assign, guard("zimmet", "create"))
	api.GET("/zimmetler", h.Assignments.List, guard("zimmet", "read"))
	api.GET("/zimmetler/:id", h.Assignments.Get, guard("zimmet", "read"))
	api.PUT("/zimmetler/:id", h.Assignments.Update, guard("zimmet", "update"))
	api.PUT("/zimmetler/:id/iade", h.Assignments.Return, guard("zimmet", "update"))
	api.DELETE("/zimmetler/:id", h.Assignments.Delete, guard("zimmet", "delete"))

	api.POST("/talepler", h.Requests.Create, guard("talep", "create"))
	api.GET("/talepler", h.Requests.List, guard("talep", "read"))
	api.GET("/talepler/bekleyen-sayisi", h.Requests.PendingCount, guard("talep", "read"))
	api.GET("/talepler/:id", h.Requests.Get, guard("talep", "read"))
	api.PUT("/talepler/:id/onayla", h.Requests.Approve, guard("talep", "approve"))
	api.PUT("/talepler/:id/reddet", h.Requests.Reject, guard("talep", "reject"))
	api.DELETE("/talepler/:id", h.Requests.Delete, guard("talep", "delete"))

	api.GET("/denetim/:entity/:id", h.Audit.History, guard("denetim", "read"))
}
