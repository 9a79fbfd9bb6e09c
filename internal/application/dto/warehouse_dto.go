package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=200"`
	Address     string `json:"address" validate:"max=255"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega (código inmutable).
type UpdateWarehouseRequest struct {
	Description *string `json:"description" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
}

// WarehouseResponse salida de una bodega. Stocks solo cuando se pide con existencias.
type WarehouseResponse struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Stocks      []StockResponse `json:"stocks,omitempty"`
}

// WarehouseSummary resumen de bodega embebido en otras respuestas.
type WarehouseSummary struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}
