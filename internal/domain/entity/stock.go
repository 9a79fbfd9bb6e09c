package entity

import "time"

// StockEntry es la existencia de un producto en una bodega (una fila por par producto+bodega).
// PrevStock y PrevDate conservan el valor anterior para auditoría.
type StockEntry struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Stock       int64
	PrevStock   int64
	PrevDate    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// AllowNegative proviene de products.allow_negative_stock (solo lectura).
	AllowNegative bool
}

// NewStockEntry crea una existencia en cero (alta de producto o de bodega).
func NewStockEntry(productID, warehouseID int64, now time.Time) *StockEntry {
	return &StockEntry{
		ProductID:   productID,
		WarehouseID: warehouseID,
		PrevDate:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyDelta suma delta al stock y guarda el valor anterior junto con el momento
// en que ese valor quedó vigente (UpdatedAt previo).
func (s *StockEntry) ApplyDelta(delta int64, now time.Time) {
	s.PrevStock = s.Stock
	s.PrevDate = s.UpdatedAt
	s.Stock += delta
	s.UpdatedAt = now
}
