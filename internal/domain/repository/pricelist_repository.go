package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// EffectivePrice precio vigente de un producto en una lista, con datos del producto.
type EffectivePrice struct {
	Product entity.Product
	Price   decimal.Decimal
}

// PriceListRepository define el puerto de persistencia de listas de precios.
type PriceListRepository interface {
	Create(ctx context.Context, list *entity.PriceList) error
	GetByID(ctx context.Context, id int64) (*entity.PriceList, error)
	Update(ctx context.Context, list *entity.PriceList) error
	List(ctx context.Context) ([]*entity.PriceList, error)
	Delete(ctx context.Context, id int64) error
	AddPrice(ctx context.Context, price *entity.Price) error
	// EffectivePrices devuelve el último precio por producto de la lista; productID != nil filtra uno.
	EffectivePrices(ctx context.Context, priceListID int64, productID *int64) ([]EffectivePrice, error)
}
