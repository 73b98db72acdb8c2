package stock

import (
	"context"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/dto"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/entity"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

// LedgerUseCase consulta de solo lectura sobre el libro mayor de movimientos.
type LedgerUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo}
}

// ListMovements devuelve una página del historial, del movimiento más reciente
// al más antiguo, junto con el total para paginar. productID vacío lista el
// historial global. El límite se acota a dto.MaxPageLimit.
func (uc *LedgerUseCase) ListMovements(_ context.Context, productID string, page dto.PageRequest) (*dto.MovementListDTO, error) {
	page.DefaultPage()

	movements, err := uc.movRepo.List(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.Count(productID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementToDTO(m))
	}
	return &dto.MovementListDTO{
		Movements: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func movementToDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		Reason:           m.Reason,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		PerformedBy:      m.PerformedBy,
		CreatedAt:        m.CreatedAt,
	}
}
