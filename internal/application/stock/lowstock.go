package stock

import (
	"context"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/dto"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

// LowStockUseCase detecta productos activos en o bajo su umbral de reposición.
type LowStockUseCase struct {
	reportingRepo repository.ReportingRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(reportingRepo repository.ReportingRepository) *LowStockUseCase {
	return &LowStockUseCase{reportingRepo: reportingRepo}
}

// FindLowStock lista productos con quantity <= umbral, ordenados por cantidad
// ascendente (el más urgente primero). threshold nil usa el umbral propio de
// cada producto; un override negativo es inválido.
func (uc *LowStockUseCase) FindLowStock(ctx context.Context, threshold *int64) ([]dto.LowStockItemDTO, error) {
	if threshold != nil && *threshold < 0 {
		return nil, domain.ErrInvalidMovement
	}

	products, err := uc.reportingRepo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			Title:             p.Title,
			Quantity:          p.Quantity,
			LowStockThreshold: p.LowStockThreshold,
			Status:            p.StockStatus(),
		})
	}
	return items, nil
}
