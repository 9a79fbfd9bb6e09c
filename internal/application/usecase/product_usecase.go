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

// ProductUseCase casos de uso para productos. El stock se maneja vía transferencias.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea el producto y su existencia en cero en cada bodega. Código repetido: ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.LowStock < 0 {
		return nil, fmt.Errorf("%w: lowStock negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		Code:               code,
		Barcode:            in.Barcode,
		Name:               in.Name,
		Description:        in.Description,
		Status:             entity.StatusEnabled,
		AllowNegativeStock: in.AllowNegativeStock,
		AlertLowStock:      in.AlertLowStock,
		LowStock:           in.LowStock,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := uc.txRunner.Run(ctx, func(r repository.TxRepositories) error {
		if err := r.Stocks.LockCatalog(ctx); err != nil {
			return err
		}
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		warehouseIDs, err := r.Warehouses.ListIDs(ctx)
		if err != nil {
			return err
		}
		if len(warehouseIDs) == 0 {
			return nil
		}
		entries := make([]*entity.StockEntry, 0, len(warehouseIDs))
		for _, wid := range warehouseIDs {
			entries = append(entries, entity.NewStockEntry(product.ID, wid, now))
		}
		return r.Stocks.CreateMany(ctx, entries)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados. El código no se modifica.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Status != nil {
		if *in.Status != entity.StatusEnabled && *in.Status != entity.StatusDisabled {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		product.Status = *in.Status
	}
	if in.AllowNegativeStock != nil {
		product.AllowNegativeStock = *in.AllowNegativeStock
	}
	if in.AlertLowStock != nil {
		product.AlertLowStock = *in.AlertLowStock
	}
	if in.LowStock != nil {
		if *in.LowStock < 0 {
			return nil, fmt.Errorf("%w: lowStock negativo", domain.ErrInvalidInput)
		}
		product.LowStock = *in.LowStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                 p.ID,
		Code:               p.Code,
		Barcode:            p.Barcode,
		Name:               p.Name,
		Description:        p.Description,
		Status:             p.Status,
		AllowNegativeStock: p.AllowNegativeStock,
		AlertLowStock:      p.AlertLowStock,
		LowStock:           p.LowStock,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
