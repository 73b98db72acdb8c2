package stock

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

// Engine es el motor de stock: único escritor de la cantidad disponible y del
// libro mayor. Cada movimiento ejecuta en una transacción con bloqueo de fila
// (SELECT FOR UPDATE): dos movimientos concurrentes sobre el mismo producto se
// serializan; productos distintos no se bloquean entre sí.
type Engine struct {
	txRunner TxRunner
}

// NewEngine construye el motor de stock.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	ProductID   string
	Type        string // inbound | outbound
	Quantity    int64  // magnitud positiva; la dirección la da Type
	Reason      string
	PerformedBy string
}

// MovementResult cantidad resultante y movimiento persistido.
type MovementResult struct {
	NewQuantity int64
	Movement    *entity.StockMovement
}

// ApplyMovement valida la entrada, bloquea la fila del producto, calcula la
// nueva cantidad y persiste actualización + entrada del libro mayor como una
// unidad atómica. Una salida que excede el stock disponible se rechaza con
// ErrInsufficientStock sin escribir nada.
//
// Un conflicto de serialización detectado durante la escritura se reintenta
// una sola vez con lecturas frescas; si persiste, se devuelve
// ErrConcurrentModification para que el caller decida reintentar.
func (uc *Engine) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	input.Reason = strings.TrimSpace(input.Reason)
	if err := validateMovementInput(input); err != nil {
		return nil, err
	}

	result, err := uc.applyOnce(ctx, input)
	if errors.Is(err, domain.ErrConcurrentModification) {
		result, err = uc.applyOnce(ctx, input)
	}
	return result, err
}

// applyOnce ejecuta un intento completo del movimiento dentro de su propia
// transacción. El callback relee la cantidad bajo bloqueo en cada intento.
func (uc *Engine) applyOnce(ctx context.Context, input MovementInput) (*MovementResult, error) {
	var result *MovementResult

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del producto; inactivo o inexistente se tratan igual
		product, err := productRepo.GetActiveForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		previous := product.Quantity
		var newQuantity int64
		switch input.Type {
		case entity.MovementTypeInbound:
			newQuantity = previous + input.Quantity
		case entity.MovementTypeOutbound:
			if input.Quantity > previous {
				return domain.ErrInsufficientStock
			}
			newQuantity = previous - input.Quantity
		}

		if err := productRepo.UpdateQuantity(input.ProductID, newQuantity); err != nil {
			return err
		}

		now := time.Now()
		movement := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        input.ProductID,
			Type:             input.Type,
			Quantity:         input.Quantity,
			Reason:           input.Reason,
			PreviousQuantity: previous,
			NewQuantity:      newQuantity,
			PerformedBy:      input.PerformedBy,
			CreatedAt:        now,
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}

		result = &MovementResult{NewQuantity: newQuantity, Movement: movement}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validateMovementInput verifica forma de la entrada: tipo conocido, cantidad
// positiva, motivo de 1 a 200 caracteres y producto indicado.
func validateMovementInput(input MovementInput) error {
	if input.ProductID == "" {
		return domain.ErrInvalidMovement
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidMovement
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidMovement
	}
	if input.Reason == "" || utf8.RuneCountInString(input.Reason) > entity.MaxReasonLength {
		return domain.ErrInvalidMovement
	}
	return nil
}
