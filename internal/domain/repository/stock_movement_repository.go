package repository

import "github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"

// StockMovementRepository puerto del libro mayor de movimientos.
// El libro es append-only: no existen Update ni Delete.
type StockMovementRepository interface {
	// Create persiste un movimiento. Genera ID si viene vacío.
	Create(movement *entity.StockMovement) error
	// List devuelve movimientos ordenados del más reciente al más antiguo.
	// productID vacío = historial global.
	List(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// Count devuelve el total de movimientos del filtro (para paginación).
	Count(productID string) (int64, error)
}
