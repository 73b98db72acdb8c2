package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/dto"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/domain/repository"
)

// ReportUseCase arma el resumen de movimientos y salud de stock del catálogo.
//
// Fuente de datos: ReportingRepository (consultas read-only). Llamadas
// repetidas sin movimientos de por medio devuelven el mismo resultado.
type ReportUseCase struct {
	reportingRepo repository.ReportingRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportingRepo repository.ReportingRepository) *ReportUseCase {
	return &ReportUseCase{reportingRepo: reportingRepo}
}

// Summarize agrupa los movimientos por tipo (opcionalmente acotados a
// [from, to]) y cuenta productos agotados y en stock bajo. Las dos consultas
// son independientes y se lanzan en paralelo.
//
// InStockCount = TotalProducts - OutOfStockCount: un producto en stock bajo
// sigue contando como disponible.
func (uc *ReportUseCase) Summarize(ctx context.Context, from, to *time.Time) (*dto.StockReportDTO, error) {
	type byTypeResult struct {
		summaries []repository.MovementTypeSummary
		err       error
	}
	type healthResult struct {
		health repository.StockHealthResult
		err    error
	}

	byTypeCh := make(chan byTypeResult, 1)
	healthCh := make(chan healthResult, 1)

	go func() {
		s, err := uc.reportingRepo.SummarizeByType(ctx, from, to)
		byTypeCh <- byTypeResult{s, err}
	}()
	go func() {
		h, err := uc.reportingRepo.CountStockHealth(ctx)
		healthCh <- healthResult{h, err}
	}()

	byType := <-byTypeCh
	health := <-healthCh

	if byType.err != nil {
		return nil, fmt.Errorf("reporte: resumen por tipo: %w", byType.err)
	}
	if health.err != nil {
		return nil, fmt.Errorf("reporte: salud de stock: %w", health.err)
	}

	summaries := make([]dto.MovementTypeSummaryDTO, 0, len(byType.summaries))
	for _, s := range byType.summaries {
		summaries = append(summaries, dto.MovementTypeSummaryDTO{
			Type:          s.Type,
			TotalQuantity: s.TotalQuantity,
			Count:         s.Count,
		})
	}

	return &dto.StockReportDTO{
		ByType:          summaries,
		TotalProducts:   health.health.TotalProducts,
		LowStockCount:   health.health.LowStock,
		OutOfStockCount: health.health.OutOfStock,
		InStockCount:    health.health.TotalProducts - health.health.OutOfStock,
	}, nil
}
