package stock

import (
	"context"
	"fmt"
	"time"
)

// ReportPDFUseCase compone el resumen y la lista de stock bajo en un PDF
// descargable para revisión de reposición fuera de línea.
type ReportPDFUseCase struct {
	reportUC   *ReportUseCase
	lowStockUC *LowStockUseCase
	generator  ReportPDFGenerator
}

// NewReportPDFUseCase construye el caso de uso.
func NewReportPDFUseCase(reportUC *ReportUseCase, lowStockUC *LowStockUseCase, generator ReportPDFGenerator) *ReportPDFUseCase {
	return &ReportPDFUseCase{reportUC: reportUC, lowStockUC: lowStockUC, generator: generator}
}

// GeneratePDF genera el reporte de stock en PDF para el rango indicado.
// Lectura pura: el documento refleja el estado en el momento de la llamada.
func (uc *ReportPDFUseCase) GeneratePDF(ctx context.Context, from, to *time.Time) ([]byte, error) {
	report, err := uc.reportUC.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.lowStockUC.FindLowStock(ctx, nil)
	if err != nil {
		return nil, err
	}

	pdf, err := uc.generator.GenerateStockReportPDF(ctx, report, lowStock, time.Now())
	if err != nil {
		return nil, fmt.Errorf("reporte pdf: %w", err)
	}
	return pdf, nil
}
