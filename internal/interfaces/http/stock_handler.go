package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/dto"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/stock"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain"
)

// StockHandler maneja las peticiones HTTP de movimientos de stock y reportes (protegido).
type StockHandler struct {
	engine    *stock.Engine
	ledger    *stock.LedgerUseCase
	report    *stock.ReportUseCase
	reportPDF *stock.ReportPDFUseCase
	lowStock  *stock.LowStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	engine *stock.Engine,
	ledger *stock.LedgerUseCase,
	report *stock.ReportUseCase,
	reportPDF *stock.ReportPDFUseCase,
	lowStock *stock.LowStockUseCase,
) *StockHandler {
	return &StockHandler{
		engine:    engine,
		ledger:    ledger,
		report:    report,
		reportPDF: reportPDF,
		lowStock:  lowStock,
	}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento de stock
// @Description  Registra una entrada (inbound) o salida (outbound) y la asienta en el libro mayor de forma atómica.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, type (inbound|outbound), quantity, reason"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.engine.ApplyMovement(c.Context(), stock.MovementInput{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		PerformedBy: userID,
	})
	if err != nil {
		return stockError(c, err)
	}

	m := result.Movement
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		NewQuantity: result.NewQuantity,
		Movement: dto.MovementDTO{
			ID:               m.ID,
			ProductID:        m.ProductID,
			Type:             m.Type,
			Quantity:         m.Quantity,
			Reason:           m.Reason,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			PerformedBy:      m.PerformedBy,
			CreatedAt:        m.CreatedAt,
		},
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Lista el libro mayor del más reciente al más antiguo. product_id vacío = historial global (requiere acceso a stock).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Tamaño de página (máx 100, default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	productID := c.Query("product_id")

	// El historial global está restringido a la capacidad de acceso a stock;
	// el historial de un producto puntual lo puede ver cualquier autenticado.
	if productID == "" && !HasStockAccess(GetRole(c)) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "historial global requiere acceso a stock"})
	}

	list, err := h.ledger.ListMovements(c.Context(), productID, page)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(list)
}

// GetReport godoc
// @Summary      Reporte de stock
// @Description  Resumen de movimientos por tipo y contadores de salud del catálogo (agotados / stock bajo).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to    query  string  false  "Fecha final (RFC 3339)"
// @Success      200  {object}  dto.StockReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report [get]
func (h *StockHandler) GetReport(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	report, err := h.report.Summarize(c.Context(), from, to)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(report)
}

// GetReportPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to    query  string  false  "Fecha final (RFC 3339)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report/pdf [get]
func (h *StockHandler) GetReportPDF(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	pdf, err := h.reportPDF.GeneratePDF(c.Context(), from, to)
	if err != nil {
		return stockError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-report.pdf"`)
	return c.Send(pdf)
}

// GetLowStock godoc
// @Summary      Productos en stock bajo
// @Description  Productos activos con cantidad en o bajo el umbral, el más urgente primero.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral global; vacío usa el umbral de cada producto"
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/low-stock [get]
func (h *StockHandler) GetLowStock(c *fiber.Ctx) error {
	var threshold *int64
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser un entero >= 0"})
		}
		threshold = &n
	}

	items, err := h.lowStock.FindLowStock(c.Context(), threshold)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "products": items})
}

// stockError traduce errores de dominio a respuestas HTTP. Todo lo no tipado
// es una falla de infraestructura y se responde 500.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMovement):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del movimiento inválidos"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado o inactivo"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "conflicto concurrente, reintente la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseDateRange lee from/to en RFC 3339; ambos opcionales.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, fmt.Errorf("from inválido: usar RFC 3339")
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, fmt.Errorf("to inválido: usar RFC 3339")
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("rango inválido: to anterior a from")
	}
	return from, to, nil
}
