package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de solo lectura para el reporte de stock y la
// detección de stock bajo.
type ReportingRepo struct {
	pool *pgxpool.Pool
}

// NewReportingRepository construye el adaptador de reportes.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepo {
	return &ReportingRepo{pool: pool}
}

// SummarizeByType agrupa los movimientos por tipo sumando cantidades y
// contando entradas. from/to acotan por created_at; nil = sin límite.
func (r *ReportingRepo) SummarizeByType(
	ctx context.Context,
	from, to *time.Time,
) ([]repository.MovementTypeSummary, error) {
	query := `
		SELECT type, COALESCE(SUM(quantity), 0) AS total_quantity, COUNT(*) AS entry_count
		FROM stock_movements`
	args := []any{}
	pos := 1
	where := ""
	if from != nil {
		where += fmt.Sprintf(" created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		if where != "" {
			where += " AND"
		}
		where += fmt.Sprintf(" created_at <= $%d", pos)
		args = append(args, *to)
	}
	if where != "" {
		query += " WHERE" + where
	}
	query += " GROUP BY type ORDER BY type"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporting.SummarizeByType: %w", err)
	}
	defer rows.Close()

	var results []repository.MovementTypeSummary
	for rows.Next() {
		var s repository.MovementTypeSummary
		if err := rows.Scan(&s.Type, &s.TotalQuantity, &s.Count); err != nil {
			return nil, fmt.Errorf("reporting.SummarizeByType scan: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// CountStockHealth cuenta en una sola pasada los productos activos totales,
// los agotados y los que están en stock bajo sin llegar a cero.
func (r *ReportingRepo) CountStockHealth(ctx context.Context) (repository.StockHealthResult, error) {
	const query = `
		SELECT
		    COUNT(*)                                                                  AS total_products,
		    COUNT(*) FILTER (WHERE quantity = 0)                                      AS out_of_stock,
		    COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= low_stock_threshold)  AS low_stock
		FROM products
		WHERE is_active`

	var h repository.StockHealthResult
	err := r.pool.QueryRow(ctx, query).Scan(&h.TotalProducts, &h.OutOfStock, &h.LowStock)
	if err != nil {
		return repository.StockHealthResult{}, fmt.Errorf("reporting.CountStockHealth: %w", err)
	}
	return h, nil
}

// FindLowStock lista productos activos en o bajo el umbral, el de menor
// cantidad primero. threshold nil usa low_stock_threshold de cada producto.
func (r *ReportingRepo) FindLowStock(ctx context.Context, threshold *int64) ([]*entity.Product, error) {
	query := `
		SELECT id, title, quantity, low_stock_threshold, is_active, created_at, updated_at
		FROM products
		WHERE is_active AND quantity <= COALESCE($1, low_stock_threshold)
		ORDER BY quantity ASC, title ASC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("reporting.FindLowStock: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Quantity, &p.LowStockThreshold,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reporting.FindLowStock scan: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
