package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeInbound  = "inbound"  // entrada: suma al stock disponible
	MovementTypeOutbound = "outbound" // salida: resta del stock disponible
)

// MaxReasonLength longitud máxima del motivo de un movimiento.
const MaxReasonLength = 200

// StockMovement es una entrada del libro mayor de stock: inmutable una vez
// creada, nunca se edita ni se borra (rompería la auditabilidad).
// Quantity es siempre la magnitud positiva; la dirección la da Type.
// Invariante: NewQuantity == PreviousQuantity ± Quantity según Type.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             string // inbound, outbound
	Quantity         int64
	Reason           string // justificación libre, 1-200 caracteres
	PreviousQuantity int64
	NewQuantity      int64
	PerformedBy      string // UserID del actor
	CreatedAt        time.Time
}

// ValidMovementType indica si el tipo corresponde a un movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeInbound || t == MovementTypeOutbound
}
