package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine    *stock.Engine
	Ledger    *stock.LedgerUseCase
	Report    *stock.ReportUseCase
	ReportPDF *stock.ReportPDFUseCase
	LowStock  *stock.LowStockUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	handler := NewStockHandler(deps.Engine, deps.Ledger, deps.Report, deps.ReportPDF, deps.LowStock)

	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", handler.ApplyMovement)
	// El gate del historial global se decide dentro del handler según el filtro
	stockGroup.Get("/movements", handler.ListMovements)
	stockGroup.Get("/low-stock", handler.GetLowStock)

	// Reportes: restringidos a la capacidad de acceso a stock
	stockGroup.Get("/report", RequireStockAccess(), handler.GetReport)
	stockGroup.Get("/report/pdf", RequireStockAccess(), handler.GetReportPDF)
}
