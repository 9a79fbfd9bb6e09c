package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	stocks   repository.StockRepository
	txRunner TxRunner
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, stocks repository.StockRepository, txRunner TxRunner) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, stocks: stocks, txRunner: txRunner}
}

// Create crea la bodega y una existencia en cero por cada producto, en la misma transacción.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: code y description son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		Code:        code,
		Description: in.Description,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(r repository.TxRepositories) error {
		if err := r.Stocks.LockCatalog(ctx); err != nil {
			return err
		}
		if err := r.Warehouses.Create(ctx, warehouse); err != nil {
			return err
		}
		productIDs, err := r.Products.ListIDs(ctx)
		if err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		entries := make([]*entity.StockEntry, 0, len(productIDs))
		for _, pid := range productIDs {
			entries = append(entries, entity.NewStockEntry(pid, warehouse.ID, now))
		}
		return r.Stocks.CreateMany(ctx, entries)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse, nil), nil
}

// GetByID obtiene una bodega con sus existencias.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	stocks, err := uc.stocks.ListByWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse, stocks), nil
}

// Update actualiza descripción y dirección.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, fmt.Errorf("%w: description vacía", domain.ErrInvalidInput)
		}
		warehouse.Description = *in.Description
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse, nil), nil
}

// List lista bodegas; withStock agrega las existencias de cada una.
func (uc *WarehouseUseCase) List(ctx context.Context, withStock bool) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		var stocks []*entity.StockEntry
		if withStock {
			if stocks, err = uc.stocks.ListByWarehouse(ctx, w.ID); err != nil {
				return nil, err
			}
		}
		items = append(items, *toWarehouseResponse(w, stocks))
	}
	return items, nil
}

// Delete elimina una bodega (sus existencias caen por cascada).
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toWarehouseResponse(w *entity.Warehouse, stocks []*entity.StockEntry) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Code:        w.Code,
		Description: w.Description,
		Address:     w.Address,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Stocks:      toStockResponses(stocks),
	}
}
