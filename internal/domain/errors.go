package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStockEntryNotFound = errors.New("no existe registro de stock para el producto en la bodega")
)

// ErrSameWarehouse transferencia con origen igual a destino. Es un ErrInvalidInput.
var ErrSameWarehouse = fmt.Errorf("%w: la bodega de origen y destino deben ser distintas", ErrInvalidInput)
