package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceListRequest entrada para crear una lista de precios.
type CreatePriceListRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=200"`
}

// UpdatePriceListRequest solo la descripción es editable.
type UpdatePriceListRequest struct {
	Description string `json:"description" validate:"required,max=200"`
}

// AddPriceRequest registra un nuevo precio (el más reciente es el vigente).
type AddPriceRequest struct {
	ProductID int64           `json:"productId" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"12500.00"`
}

// PriceListResponse salida de una lista de precios.
type PriceListResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PriceResponse precio registrado.
type PriceResponse struct {
	ID          int64           `json:"id"`
	PriceListID int64           `json:"priceListId"`
	ProductID   int64           `json:"productId"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PriceListStockItem producto con precio vigente y existencia en una bodega.
type PriceListStockItem struct {
	Product ProductSummary  `json:"product"`
	Price   decimal.Decimal `json:"price" swaggertype:"string"`
	Stock   int64           `json:"stock"`
}

// PriceListWarehouseResponse vista lista de precios × bodega.
type PriceListWarehouseResponse struct {
	PriceList PriceListResponse    `json:"priceList"`
	Warehouse WarehouseSummary     `json:"warehouse"`
	Items     []PriceListStockItem `json:"items"`
}
