package entity

import "time"

// Estados derivados del stock de un producto (nunca se persisten).
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"
)

// DefaultLowStockThreshold umbral de stock bajo cuando el catálogo no define uno.
const DefaultLowStockThreshold int64 = 10

// Product representa el estado de stock de un producto del catálogo.
// El catálogo es dueño de Title y del ciclo de vida (alta / desactivación);
// Quantity solo lo muta el motor de stock y nunca baja de cero.
type Product struct {
	ID                string
	Title             string
	Quantity          int64
	LowStockThreshold int64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockStatus deriva el estado de stock a partir de Quantity y LowStockThreshold.
// No existe columna de estado: se calcula siempre para evitar desincronización.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StockStatusOut
	case p.Quantity <= p.LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
