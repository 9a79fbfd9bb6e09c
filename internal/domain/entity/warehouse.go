package entity

import "time"

// Warehouse representa un depósito/almacén donde se guarda stock.
type Warehouse struct {
	ID          int64
	Code        string
	Description string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
