package http

import "github.com/labstack/echo/v4"

// Register mounts the API. mw applies to /api only.
func Register(e *echo.Echo, h *Handler, ch *CreditHandler, ph *PaymentHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api", mw...)

	api.GET("/creditos", ch.List)
	api.POST("/creditos", ch.Create)
	api.GET("/creditos/:id", ch.Get)
	api.POST("/creditos/:id/:accion", ch.Transition)
	api.GET("/creditos/:id/cuotas", ch.Cuotas)
	api.GET("/creditos/:id/historial", ch.History)
	api.GET("/creditos/:id/pagos", ph.ForCredit)

	api.GET("/pagos", ph.List)
	api.GET("/pagos/resumen", ph.Summary)
	api.POST("/pagos/:id/procesar", ph.Process)
}
