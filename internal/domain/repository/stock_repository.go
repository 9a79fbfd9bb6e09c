package repository

import (
	"context"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// StockRepository define el puerto del libro de existencias (producto+bodega).
type StockRepository interface {
	// Get devuelve la existencia del par o nil si no existe.
	Get(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error)
	// LockEntries bloquea (SELECT FOR UPDATE) las existencias de los productos en las bodegas
	// indicadas, ordenadas por bodega y producto. Solo dentro de una transacción.
	LockEntries(ctx context.Context, warehouseIDs, productIDs []int64) ([]*entity.StockEntry, error)
	// SetQuantity sobrescribe stock, prev_stock, prev_date y updated_at por ID.
	SetQuantity(ctx context.Context, entry *entity.StockEntry) error
	CreateMany(ctx context.Context, entries []*entity.StockEntry) error
	// LockCatalog serializa las altas de productos y bodegas hasta el fin de la transacción,
	// para que cada alta vea las filas que la otra ya confirmó al sembrar existencias.
	LockCatalog(ctx context.Context) error
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.StockEntry, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.StockEntry, error)
}
