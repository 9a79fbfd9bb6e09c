package dto

import "time"

// StockResponse existencia de un producto en una bodega.
type StockResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	WarehouseID int64     `json:"warehouseId"`
	Stock       int64     `json:"stock"`
	PrevStock   int64     `json:"prevStock"`
	PrevDate    time.Time `json:"prevDate"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
