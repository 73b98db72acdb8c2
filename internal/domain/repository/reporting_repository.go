package repository

import (
	"context"
	"time"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
)

// MovementTypeSummary agregado de movimientos por tipo.
type MovementTypeSummary struct {
	Type          string
	TotalQuantity int64
	Count         int64
}

// StockHealthResult contadores de salud del catálogo activo.
type StockHealthResult struct {
	TotalProducts int64
	OutOfStock    int64 // quantity == 0
	LowStock      int64 // 0 < quantity <= low_stock_threshold
}

// ReportingRepository consultas de solo lectura sobre el libro mayor y el
// estado de stock. No muta ningún registro.
type ReportingRepository interface {
	// SummarizeByType agrupa movimientos por tipo sumando cantidades.
	// from/to acotan por created_at; nil = sin límite.
	SummarizeByType(ctx context.Context, from, to *time.Time) ([]MovementTypeSummary, error)
	// CountStockHealth cuenta productos activos totales, agotados y en stock bajo.
	CountStockHealth(ctx context.Context) (StockHealthResult, error)
	// FindLowStock lista productos activos con quantity <= umbral, del más
	// urgente (menor cantidad) al menos urgente. threshold nil usa el umbral
	// propio de cada producto.
	FindLowStock(ctx context.Context, threshold *int64) ([]*entity.Product, error)
}
