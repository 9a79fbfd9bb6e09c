package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceList lista de precios (minorista, mayorista, etc.).
type PriceList struct {
	ID          int64
	Code        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Price precio de un producto en una lista. El más reciente por producto es el vigente.
type Price struct {
	ID          int64
	PriceListID int64
	ProductID   int64
	Price       decimal.Decimal
	CreatedAt   time.Time
}
