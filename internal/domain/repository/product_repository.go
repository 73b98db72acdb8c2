package repository

import "github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"

// ProductRepository puerto de persistencia del estado de stock de productos.
// Create lo usa el componente de catálogo (seed); el motor de stock solo
// lee y actualiza Quantity.
type ProductRepository interface {
	// Create da de alta un producto con su cantidad inicial.
	Create(product *entity.Product) error
	// GetActive obtiene un producto activo por ID. Devuelve nil si no existe
	// o está desactivado.
	GetActive(id string) (*entity.Product, error)
	// GetActiveForUpdate obtiene el producto activo bloqueando la fila
	// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
	GetActiveForUpdate(id string) (*entity.Product, error)
	// UpdateQuantity fija la cantidad disponible del producto.
	UpdateQuantity(id string, quantity int64) error
	// Deactivate marca el producto como inactivo (borrado lógico del catálogo).
	Deactivate(id string) error
}
