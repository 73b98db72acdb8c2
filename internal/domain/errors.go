package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de infraestructura NO se modelan aquí: llegan envueltos con %w
// desde los adaptadores y los handlers los tratan como fallas 5xx.
var (
	ErrProductNotFound        = errors.New("producto no encontrado o inactivo")
	ErrInvalidMovement        = errors.New("movimiento inválido")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrentModification = errors.New("modificación concurrente detectada")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
)
