package stock_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/stock"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia.
//
// memTxRunner reproduce la semántica de la transacción real: el callback opera
// sobre una copia del estado bajo un lock global (equivalente al bloqueo de
// fila) y los cambios solo se publican si el callback termina sin error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{products: map[string]*entity.Product{}}
}

// addProduct alta directa para preparar escenarios (rol del catálogo).
func (s *memStore) addProduct(title string, quantity, threshold int64, active bool) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p := &entity.Product{
		ID:                uuid.New().String(),
		Title:             title,
		Quantity:          quantity,
		LowStockThreshold: threshold,
		IsActive:          active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) productQuantity(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return p.Quantity
	}
	return -1
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// clone copia productos y movimientos para simular el espacio de la tx.
func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.movements = append(c.movements, s.movements...)
	return c
}

func (s *memStore) replace(from *memStore) {
	s.products = from.products
	s.movements = from.movements
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	store *memStore
	// movementErr fuerza el fallo del insert en el libro mayor (test de atomicidad)
	movementErr error
}

var _ stock.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := r.store.clone()
	err := fn(
		&memProductRepo{data: tx},
		&memMovementRepo{data: tx, createErr: r.movementErr},
	)
	if err != nil {
		return err
	}
	r.store.replace(tx)
	return nil
}

// conflictTxRunner devuelve ErrConcurrentModification en los primeros
// `conflicts` intentos y después delega (test del reintento único).
type conflictTxRunner struct {
	inner     stock.TxRunner
	conflicts int
	attempts  int
}

func (r *conflictTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.attempts++
	if r.attempts <= r.conflicts {
		return domain.ErrConcurrentModification
	}
	return r.inner.Run(ctx, fn)
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct {
	data *memStore
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(product *entity.Product) error {
	if _, exists := r.data.products[product.ID]; exists {
		return domain.ErrDuplicate
	}
	cp := *product
	r.data.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetActive(id string) (*entity.Product, error) {
	p, ok := r.data.products[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetActiveForUpdate(id string) (*entity.Product, error) {
	return r.GetActive(id)
}

func (r *memProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.data.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memProductRepo) Deactivate(id string) error {
	p, ok := r.data.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsActive = false
	return nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovementRepo struct {
	data      *memStore
	createErr error
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	cp := *movement
	r.data.movements = append(r.data.movements, &cp)
	return nil
}

func (r *memMovementRepo) List(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	filtered := r.filter(productID)
	// más recientes primero = orden inverso de inserción
	var out []*entity.StockMovement
	for i := len(filtered) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		cp := *filtered[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memMovementRepo) Count(productID string) (int64, error) {
	return int64(len(r.filter(productID))), nil
}

func (r *memMovementRepo) filter(productID string) []*entity.StockMovement {
	if productID == "" {
		return r.data.movements
	}
	var out []*entity.StockMovement
	for _, m := range r.data.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// lockedMovementRepo variante para los casos de uso de lectura: toma el lock
// del store en cada llamada (fuera de una tx).
type lockedMovementRepo struct {
	store *memStore
}

var _ repository.StockMovementRepository = (*lockedMovementRepo)(nil)

func (r *lockedMovementRepo) Create(movement *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memMovementRepo{data: r.store}).Create(movement)
}

func (r *lockedMovementRepo) List(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memMovementRepo{data: r.store}).List(productID, limit, offset)
}

func (r *lockedMovementRepo) Count(productID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&memMovementRepo{data: r.store}).Count(productID)
}

// ── ReportingRepository ───────────────────────────────────────────────────────

type memReportingRepo struct {
	store *memStore
}

var _ repository.ReportingRepository = (*memReportingRepo)(nil)

func (r *memReportingRepo) SummarizeByType(_ context.Context, from, to *time.Time) ([]repository.MovementTypeSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byType := map[string]*repository.MovementTypeSummary{}
	for _, m := range r.store.movements {
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		s, ok := byType[m.Type]
		if !ok {
			s = &repository.MovementTypeSummary{Type: m.Type}
			byType[m.Type] = s
		}
		s.TotalQuantity += m.Quantity
		s.Count++
	}

	var out []repository.MovementTypeSummary
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *memReportingRepo) CountStockHealth(_ context.Context) (repository.StockHealthResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var h repository.StockHealthResult
	for _, p := range r.store.products {
		if !p.IsActive {
			continue
		}
		h.TotalProducts++
		switch {
		case p.Quantity == 0:
			h.OutOfStock++
		case p.Quantity <= p.LowStockThreshold:
			h.LowStock++
		}
	}
	return h, nil
}

func (r *memReportingRepo) FindLowStock(_ context.Context, threshold *int64) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Product
	for _, p := range r.store.products {
		if !p.IsActive {
			continue
		}
		limit := p.LowStockThreshold
		if threshold != nil {
			limit = *threshold
		}
		if p.Quantity <= limit {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return strings.Compare(out[i].Title, out[j].Title) < 0
	})
	return out, nil
}
