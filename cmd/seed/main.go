// seed da de alta productos de demostración con su cantidad inicial,
// jugando el rol del componente de catálogo (dueño del alta de productos).
//
// Uso: go run ./cmd/seed
// Lee la configuración de DB de las mismas variables de entorno que la API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/infrastructure/postgres"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)

	type seedProduct struct {
		title     string
		quantity  int64
		threshold int64
	}
	seeds := []seedProduct{
		{"Teclado mecánico 87 teclas", 50, 10},
		{"Mouse inalámbrico", 120, 15},
		{"Monitor 27\" IPS", 8, 5},
		{"Hub USB-C 7 puertos", 0, 10},
		{"Auriculares con micrófono", 35, 10},
	}

	now := time.Now()
	for _, s := range seeds {
		p := &entity.Product{
			ID:                uuid.New().String(),
			Title:             s.title,
			Quantity:          s.quantity,
			LowStockThreshold: s.threshold,
			IsActive:          true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "insertar %q: %v\n", s.title, err)
			os.Exit(1)
		}
		fmt.Printf("producto %s (%s) qty=%d\n", p.ID, p.Title, p.Quantity)
	}
	fmt.Println("seed completado")
}
