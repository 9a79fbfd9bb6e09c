package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code               string `json:"code" validate:"required,max=50"`
	Barcode            string `json:"barcode" validate:"max=100"`
	Name               string `json:"name" validate:"required,max=200"`
	Description        string `json:"description"`
	AllowNegativeStock bool   `json:"allowNegativeStock"`
	AlertLowStock      bool   `json:"alertLowStock"`
	LowStock           int64  `json:"lowStock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Barcode            *string `json:"barcode" validate:"omitempty,max=100"`
	Name               *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string `json:"description"`
	Status             *string `json:"status" validate:"omitempty,oneof=ENABLED DISABLED"`
	AllowNegativeStock *bool   `json:"allowNegativeStock"`
	AlertLowStock      *bool   `json:"alertLowStock"`
	LowStock           *int64  `json:"lowStock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	Barcode            string    `json:"barcode"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Status             string    `json:"status"`
	AllowNegativeStock bool      `json:"allowNegativeStock"`
	AlertLowStock      bool      `json:"alertLowStock"`
	LowStock           int64     `json:"lowStock"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductSummary resumen de producto embebido en otras respuestas.
type ProductSummary struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
