package entity

import "time"

// Transfer cabecera de una transferencia de stock entre dos bodegas. Inmutable tras crearse.
type Transfer struct {
	ID                     int64
	WarehouseOriginID      int64
	WarehouseDestinationID int64
	UserID                 int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TransferLine renglón de la transferencia (producto y cantidad > 0).
type TransferLine struct {
	ID         int64
	TransferID int64
	ProductID  int64
	Quantity   int64
}
