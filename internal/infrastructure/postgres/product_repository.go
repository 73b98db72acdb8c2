package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create da de alta un producto con su cantidad inicial (rol del catálogo).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, title, quantity, low_stock_threshold, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.Quantity, product.LowStockThreshold,
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetActive obtiene un producto activo por ID. nil si no existe o está inactivo.
func (r *ProductRepo) GetActive(id string) (*entity.Product, error) {
	query := `
		SELECT id, title, quantity, low_stock_threshold, is_active, created_at, updated_at
		FROM products WHERE id = $1 AND is_active`
	return r.scanOne(query, id)
}

// GetActiveForUpdate obtiene el producto activo y bloquea la fila (SELECT FOR UPDATE).
// Serializa movimientos concurrentes sobre el mismo producto dentro de la tx.
func (r *ProductRepo) GetActiveForUpdate(id string) (*entity.Product, error) {
	query := `
		SELECT id, title, quantity, low_stock_threshold, is_active, created_at, updated_at
		FROM products WHERE id = $1 AND is_active
		FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateQuantity fija la cantidad disponible del producto.
func (r *ProductRepo) UpdateQuantity(id string, quantity int64) error {
	query := `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Deactivate marca el producto como inactivo. El motor de stock rechazará
// movimientos posteriores contra él.
func (r *ProductRepo) Deactivate(id string) error {
	query := `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Title, &p.Quantity, &p.LowStockThreshold, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
