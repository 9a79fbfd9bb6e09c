package dto

import "time"

// CartItem renglón del carrito de transferencia.
type CartItem struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int64 `json:"quantity" validate:"gt=0"`
}

// CreateTransferRequest cuerpo de POST /api/transfers. El usuario sale del token.
type CreateTransferRequest struct {
	WarehouseOriginID      int64      `json:"warehouseOriginId" validate:"gt=0"`
	WarehouseDestinationID int64      `json:"warehouseDestinationId" validate:"gt=0"`
	Cart                   []CartItem `json:"cart" validate:"required,min=1,dive"`
}

// TransferResponse cabecera de la transferencia (respuesta del alta, sin renglones).
type TransferResponse struct {
	ID                     int64     `json:"id"`
	WarehouseOriginID      int64     `json:"warehouseOriginId"`
	WarehouseDestinationID int64     `json:"warehouseDestinationId"`
	UserID                 int64     `json:"userId"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// TransferLineResponse renglón con el producto.
type TransferLineResponse struct {
	ID       int64          `json:"id"`
	Product  ProductSummary `json:"product"`
	Quantity int64          `json:"quantity"`
}

// TransferDetailResponse transferencia completa para consultas.
type TransferDetailResponse struct {
	TransferResponse
	WarehouseOrigin      WarehouseSummary       `json:"warehouseOrigin"`
	WarehouseDestination WarehouseSummary       `json:"warehouseDestination"`
	User                 UserSummary            `json:"user"`
	Details              []TransferLineResponse `json:"details"`
}

// TransferListResponse lista paginada de transferencias.
type TransferListResponse struct {
	Items []TransferDetailResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
