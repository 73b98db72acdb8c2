package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/stock"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
)

// newEngine motor sobre un store en memoria limpio.
func newEngine(t *testing.T) (*stock.Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	return stock.NewEngine(&memTxRunner{store: store}), store
}

func inbound(productID string, qty int64, reason string) stock.MovementInput {
	return stock.MovementInput{
		ProductID:   productID,
		Type:        entity.MovementTypeInbound,
		Quantity:    qty,
		Reason:      reason,
		PerformedBy: "user-1",
	}
}

func outbound(productID string, qty int64, reason string) stock.MovementInput {
	in := inbound(productID, qty, reason)
	in.Type = entity.MovementTypeOutbound
	return in
}

// Entrada simple: actualiza cantidad y asienta la entrada con los snapshots correctos.
func TestApplyMovement_EntradaRegistraSnapshots(t *testing.T) {
	engine, store := newEngine(t)
	p := store.addProduct("Teclado", 0, 10, true)

	result, err := engine.ApplyMovement(context.Background(), inbound(p.ID, 20, "Restock"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, int64(20), result.NewQuantity)
	m := result.Movement
	require.NotNil(t, m)
	assert.NotEmpty(t, m.ID, "el movimiento debe tener ID generado")
	assert.Equal(t, p.ID, m.ProductID)
	assert.Equal(t, entity.MovementTypeInbound, m.Type)
	assert.Equal(t, int64(20), m.Quantity, "la magnitud nunca va con signo")
	assert.Equal(t, "Restock", m.Reason)
	assert.Equal(t, int64(0), m.PreviousQuantity)
	assert.Equal(t, int64(20), m.NewQuantity)
	assert.Equal(t, "user-1", m.PerformedBy)
	assert.False(t, m.CreatedAt.IsZero())

	assert.Equal(t, int64(20), store.productQuantity(p.ID), "la cantidad persistida debe coincidir")
	assert.Equal(t, 1, store.movementCount(), "exactamente un asiento por mutación exitosa")
}

// Escenario: 50 en stock, umbral 10. Salida de 45 deja 5 (stock bajo); salida de 5
// deja 0 (agotado); una salida más se rechaza sin tocar el estado.
func TestApplyMovement_SalidasHastaAgotarYRechazo(t *testing.T) {
	engine, store := newEngine(t)
	p := store.addProduct("Monitor", 50, 10, true)
	lowStockUC := stock.NewLowStockUseCase(&memReportingRepo{store: store})

	result, err := engine.ApplyMovement(context.Background(), outbound(p.ID, 45, "Pedido #1001"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.NewQuantity)

	items, err := lowStockUC.FindLowStock(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 1, "con 5 <= umbral 10 el producto entra al listado de stock bajo")
	assert.Equal(t, p.ID, items[0].ProductID)
	assert.Equal(t, entity.StockStatusLow, items[0].Status)

	result, err = engine.ApplyMovement(context.Background(), outbound(p.ID, 5, "Pedido #1002"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.NewQuantity)

	items, err = lowStockUC.FindLowStock(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entity.StockStatusOut, items[0].Status, "con cantidad 0 el estado derivado es agotado")

	// Sobregiro: rechazo estricto, sin escritura parcial
	_, err = engine.ApplyMovement(context.Background(), outbound(p.ID, 1, "Pedido #1003"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(0), store.productQuantity(p.ID), "la cantidad no debe cambiar tras el rechazo")
	assert.Equal(t, 2, store.movementCount(), "el rechazo no asienta nada en el libro")
}

// La cantidad nunca baja de cero: un sobregiro directo también se rechaza.
func TestApplyMovement_SobregiroDirecto(t *testing.T) {
	engine, store := newEngine(t)
	p := store.addProduct("Mouse", 3, 10, true)

	_, err := engine.ApplyMovement(context.Background(), outbound(p.ID, 4, "Pedido"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), store.productQuantity(p.ID))
	assert.Zero(t, store.movementCount())
}

// Validación de forma: tipo, cantidad, motivo y producto.
func TestApplyMovement_EntradasInvalidas(t *testing.T) {
	engine, store := newEngine(t)
	p := store.addProduct("Hub USB", 10, 5, true)

	longReason := make([]byte, 0, 201)
	for i := 0; i < 201; i++ {
		longReason = append(longReason, 'x')
	}

	cases := []struct {
		name  string
		input stock.MovementInput
	}{
		{"producto vacío", inbound("", 1, "ok")},
		{"tipo desconocido", stock.MovementInput{ProductID: p.ID, Type: "adjust", Quantity: 1, Reason: "ok"}},
		{"cantidad cero", inbound(p.ID, 0, "ok")},
		{"cantidad negativa", inbound(p.ID, -5, "ok")},
		{"motivo vacío", inbound(p.ID, 1, "")},
		{"motivo solo espacios", inbound(p.ID, 1, "   ")},
		{"motivo de más de 200 caracteres", inbound(p.ID, 1, string(longReason))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ApplyMovement(context.Background(), tc.input)
			require.ErrorIs(t, err, domain.ErrInvalidMovement)
		})
	}

	assert.Equal(t, int64(10), store.productQuantity(p.ID), "ninguna entrada inválida debe tocar el estado")
	assert.Zero(t, store.movementCount())
}

// Un motivo de exactamente 200 caracteres es válido.
func TestApplyMovement_MotivoEnElLimite(t *testing.T) {
	engine, store := newEngine(t)
	p := store.addProduct("Auriculares", 0, 10, true)

	reason := ""
	for i := 0; i < 200; i++ {
		reason += "a"
	}
	_, err := engine.ApplyMovement(context.Background(), inbound(p.ID, 1, reason))
	require.NoError(t, err)
	assert.Equal(t, 1, store.movementCount())
}

// Producto desactivado: mismo trato que inexistente, sin tocar el estado.
func TestApplyMovement_ProductoDesactivado(t *testing.T) {
	engine, store := newEngine(t)
	p := store.addProduct("Descatalogado", 30, 10, true)
	store.mu.Lock()
	store.products[p.ID].IsActive = false
	store.mu.Unlock()

	_, err := engine.ApplyMovement(context.Background(), inbound(p.ID, 5, "Restock"))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, int64(30), store.productQuantity(p.ID))
	assert.Zero(t, store.movementCount())
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.ApplyMovement(context.Background(), inbound("no-existe", 5, "Restock"))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Atomicidad: si el insert del libro falla, la cantidad tampoco cambia.
func TestApplyMovement_FalloDeLedgerRevierteCantidad(t *testing.T) {
	store := newMemStore()
	p := store.addProduct("Teclado", 10, 5, true)
	boom := errors.New("insert ledger: connection reset")
	engine := stock.NewEngine(&memTxRunner{store: store, movementErr: boom})

	_, err := engine.ApplyMovement(context.Background(), inbound(p.ID, 5, "Restock"))
	require.ErrorIs(t, err, boom)

	assert.Equal(t, int64(10), store.productQuantity(p.ID), "rollback: sin cantidad nueva sin asiento")
	assert.Zero(t, store.movementCount())
}

// Un conflicto de serialización se reintenta una sola vez con lecturas frescas.
func TestApplyMovement_ReintentoUnicoTrasConflicto(t *testing.T) {
	store := newMemStore()
	p := store.addProduct("Teclado", 10, 5, true)

	runner := &conflictTxRunner{inner: &memTxRunner{store: store}, conflicts: 1}
	engine := stock.NewEngine(runner)

	result, err := engine.ApplyMovement(context.Background(), inbound(p.ID, 5, "Restock"))
	require.NoError(t, err)
	assert.Equal(t, int64(15), result.NewQuantity)
	assert.Equal(t, 2, runner.attempts)

	// Dos conflictos seguidos: se agota el reintento y el error llega al caller
	runner = &conflictTxRunner{inner: &memTxRunner{store: store}, conflicts: 2}
	engine = stock.NewEngine(runner)
	_, err = engine.ApplyMovement(context.Background(), inbound(p.ID, 5, "Restock"))
	require.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, 2, runner.attempts, "exactamente un reintento interno")
}

// N movimientos concurrentes de 1 unidad sobre el mismo producto: sin updates
// perdidos, N asientos y cantidad final Q+N.
func TestApplyMovement_ConcurrenciaSinUpdatesPerdidos(t *testing.T) {
	engine, store := newEngine(t)
	const initial, n = 100, 50
	p := store.addProduct("Concurrente", initial, 10, true)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.ApplyMovement(context.Background(), inbound(p.ID, 1, "Restock concurrente"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(initial+n), store.productQuantity(p.ID))
	assert.Equal(t, n, store.movementCount())
}

// Reconciliación: la cantidad vigente siempre es igual a la inicial más la suma
// neta de los movimientos; cada asiento encadena con el anterior.
func TestApplyMovement_Reconciliacion(t *testing.T) {
	engine, store := newEngine(t)
	const initial int64 = 25
	p := store.addProduct("Reconciliable", initial, 10, true)

	steps := []stock.MovementInput{
		inbound(p.ID, 40, "Compra proveedor"),
		outbound(p.ID, 12, "Pedido #2001"),
		outbound(p.ID, 3, "Rotura en bodega"),
		inbound(p.ID, 7, "Devolución cliente"),
		outbound(p.ID, 20, "Pedido #2002"),
	}
	for _, in := range steps {
		_, err := engine.ApplyMovement(context.Background(), in)
		require.NoError(t, err)
	}

	movements, err := (&lockedMovementRepo{store: store}).List(p.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, movements, len(steps))

	// Del más antiguo al más reciente para verificar la cadena de snapshots
	var net int64
	prev := initial
	for i := len(movements) - 1; i >= 0; i-- {
		m := movements[i]
		assert.Equal(t, prev, m.PreviousQuantity, "cada asiento arranca donde terminó el anterior")
		switch m.Type {
		case entity.MovementTypeInbound:
			assert.Equal(t, m.PreviousQuantity+m.Quantity, m.NewQuantity)
			net += m.Quantity
		case entity.MovementTypeOutbound:
			assert.Equal(t, m.PreviousQuantity-m.Quantity, m.NewQuantity)
			net -= m.Quantity
		}
		prev = m.NewQuantity
	}
	assert.Equal(t, initial+net, store.productQuantity(p.ID),
		"cantidad == inicial + Σ(inbound) - Σ(outbound)")
}
