package stock

import (
	"context"
	"time"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/dto"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de stock:
// actualización de cantidad + inserción en el libro mayor, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// ReportPDFGenerator renderiza el reporte de stock como documento PDF.
type ReportPDFGenerator interface {
	GenerateStockReportPDF(
		ctx context.Context,
		report *dto.StockReportDTO,
		lowStock []dto.LowStockItemDTO,
		generatedAt time.Time,
	) ([]byte, error)
}
