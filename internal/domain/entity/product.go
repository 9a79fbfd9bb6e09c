package entity

import "time"

// Estados válidos de Product.
const (
	StatusEnabled  = "ENABLED"
	StatusDisabled = "DISABLED"
)

// Product representa un artículo del catálogo. El stock se lleva por bodega en StockEntry.
type Product struct {
	ID                 int64
	Code               string // único
	Barcode            string
	Name               string
	Description        string
	Status             string
	AllowNegativeStock bool
	AlertLowStock      bool
	LowStock           int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
