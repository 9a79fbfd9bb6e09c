package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// StockUseCase consultas del libro de existencias.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// List devuelve las existencias de una bodega, de un producto o, con ambos filtros,
// la única entrada del par (ErrNotFound si no existe).
func (uc *StockUseCase) List(ctx context.Context, warehouseID, productID int64) ([]dto.StockResponse, error) {
	var (
		entries []*entity.StockEntry
		err     error
	)
	switch {
	case warehouseID > 0 && productID > 0:
		e, getErr := uc.repo.Get(ctx, productID, warehouseID)
		if getErr != nil {
			return nil, getErr
		}
		if e == nil {
			return nil, domain.ErrNotFound
		}
		entries = []*entity.StockEntry{e}
	case warehouseID > 0:
		entries, err = uc.repo.ListByWarehouse(ctx, warehouseID)
	case productID > 0:
		entries, err = uc.repo.ListByProduct(ctx, productID)
	default:
		return nil, fmt.Errorf("%w: indicar warehouseId o productId", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	out := toStockResponses(entries)
	if out == nil {
		out = []dto.StockResponse{}
	}
	return out, nil
}

func toStockResponses(entries []*entity.StockEntry) []dto.StockResponse {
	if len(entries) == 0 {
		return nil
	}
	out := make([]dto.StockResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			WarehouseID: e.WarehouseID,
			Stock:       e.Stock,
			PrevStock:   e.PrevStock,
			PrevDate:    e.PrevDate,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return out
}
