package dto

import "time"

// ApplyMovementRequest body para POST /api/stock/movements.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // inbound | outbound
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementDTO representación de una entrada del libro mayor.
type MovementDTO struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	Reason           string    `json:"reason"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	PerformedBy      string    `json:"performed_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// ApplyMovementResponse resultado de un movimiento aplicado.
type ApplyMovementResponse struct {
	NewQuantity int64       `json:"new_quantity"`
	Movement    MovementDTO `json:"movement"`
}

// MovementListDTO página del historial de movimientos (más recientes primero).
type MovementListDTO struct {
	Movements []MovementDTO `json:"movements"`
	Page      PageResponse  `json:"page"`
}

// MovementTypeSummaryDTO agregado por tipo de movimiento.
type MovementTypeSummaryDTO struct {
	Type          string `json:"type"`
	TotalQuantity int64  `json:"total_quantity"`
	Count         int64  `json:"count"`
}

// StockReportDTO resumen del libro mayor y salud del catálogo.
type StockReportDTO struct {
	ByType          []MovementTypeSummaryDTO `json:"by_type"`
	TotalProducts   int64                    `json:"total_products"`
	LowStockCount   int64                    `json:"low_stock_count"`
	OutOfStockCount int64                    `json:"out_of_stock_count"`
	InStockCount    int64                    `json:"in_stock_count"`
}

// LowStockItemDTO producto en riesgo de agotarse.
type LowStockItemDTO struct {
	ProductID         string `json:"product_id"`
	Title             string `json:"title"`
	Quantity          int64  `json:"quantity"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
	Status            string `json:"status"` // low_stock | out_of_stock
}
