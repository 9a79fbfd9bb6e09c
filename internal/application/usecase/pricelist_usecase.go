package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// PriceListUseCase listas de precios y su cruce con el stock de una bodega.
type PriceListUseCase struct {
	repo       repository.PriceListRepository
	warehouses repository.WarehouseRepository
	stocks     repository.StockRepository
}

// NewPriceListUseCase construye el caso de uso.
func NewPriceListUseCase(
	repo repository.PriceListRepository,
	warehouses repository.WarehouseRepository,
	stocks repository.StockRepository,
) *PriceListUseCase {
	return &PriceListUseCase{repo: repo, warehouses: warehouses, stocks: stocks}
}

// Create crea una lista de precios. Código repetido: ErrDuplicate.
func (uc *PriceListUseCase) Create(ctx context.Context, in dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: code y description son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now()
	list := &entity.PriceList{Code: code, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return toPriceListResponse(list), nil
}

// List devuelve todas las listas.
func (uc *PriceListUseCase) List(ctx context.Context) ([]dto.PriceListResponse, error) {
	lists, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, *toPriceListResponse(l))
	}
	return out, nil
}

// Update cambia la descripción.
func (uc *PriceListUseCase) Update(ctx context.Context, id int64, in dto.UpdatePriceListRequest) (*dto.PriceListResponse, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description vacía", domain.ErrInvalidInput)
	}
	list, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Description = in.Description
	list.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, list); err != nil {
		return nil, err
	}
	return toPriceListResponse(list), nil
}

// Delete elimina la lista y sus precios.
func (uc *PriceListUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// AddPrice registra un nuevo precio; pasa a ser el vigente para el producto.
func (uc *PriceListUseCase) AddPrice(ctx context.Context, id int64, in dto.AddPriceRequest) (*dto.PriceResponse, error) {
	if in.ProductID <= 0 || in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: productId y price >= 0 son obligatorios", domain.ErrInvalidInput)
	}
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	price := &entity.Price{PriceListID: id, ProductID: in.ProductID, Price: in.Price, CreatedAt: time.Now()}
	if err := uc.repo.AddPrice(ctx, price); err != nil {
		return nil, err
	}
	return &dto.PriceResponse{
		ID:          price.ID,
		PriceListID: price.PriceListID,
		ProductID:   price.ProductID,
		Price:       price.Price,
		CreatedAt:   price.CreatedAt,
	}, nil
}

// WarehouseView cruza el precio vigente de cada producto con su existencia en la bodega.
// Los productos sin registro de stock en la bodega se omiten. Orden por nombre (collation es).
func (uc *PriceListUseCase) WarehouseView(ctx context.Context, id, warehouseID int64) (*dto.PriceListWarehouseResponse, error) {
	list, warehouse, err := uc.listAndWarehouse(ctx, id, warehouseID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.repo.EffectivePrices(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	stocks, err := uc.stocks.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[int64]int64, len(stocks))
	for _, s := range stocks {
		byProduct[s.ProductID] = s.Stock
	}

	items := make([]dto.PriceListStockItem, 0, len(prices))
	for _, p := range prices {
		if qty, ok := byProduct[p.Product.ID]; ok {
			items = append(items, toPriceListStockItem(p, qty))
		}
	}
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(items[i].Product.Name, items[j].Product.Name) < 0
	})
	return toPriceListWarehouseResponse(list, warehouse, items), nil
}

// WarehouseProductView igual que WarehouseView pero para un solo producto.
// Items queda vacío si el producto no tiene precio en la lista o existencia en la bodega.
func (uc *PriceListUseCase) WarehouseProductView(ctx context.Context, id, warehouseID, productID int64) (*dto.PriceListWarehouseResponse, error) {
	list, warehouse, err := uc.listAndWarehouse(ctx, id, warehouseID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.repo.EffectivePrices(ctx, id, &productID)
	if err != nil {
		return nil, err
	}
	items := []dto.PriceListStockItem{}
	if len(prices) > 0 {
		entry, err := uc.stocks.Get(ctx, productID, warehouseID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			items = append(items, toPriceListStockItem(prices[0], entry.Stock))
		}
	}
	return toPriceListWarehouseResponse(list, warehouse, items), nil
}

func (uc *PriceListUseCase) listAndWarehouse(ctx context.Context, id, warehouseID int64) (*entity.PriceList, *entity.Warehouse, error) {
	list, err := uc.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	warehouse, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, domain.ErrNotFound
	}
	return list, warehouse, nil
}

func toPriceListStockItem(p repository.EffectivePrice, stock int64) dto.PriceListStockItem {
	return dto.PriceListStockItem{
		Product: dto.ProductSummary{ID: p.Product.ID, Code: p.Product.Code, Name: p.Product.Name},
		Price:   p.Price,
		Stock:   stock,
	}
}

func toPriceListWarehouseResponse(l *entity.PriceList, w *entity.Warehouse, items []dto.PriceListStockItem) *dto.PriceListWarehouseResponse {
	return &dto.PriceListWarehouseResponse{
		PriceList: *toPriceListResponse(l),
		Warehouse: dto.WarehouseSummary{ID: w.ID, Code: w.Code, Description: w.Description},
		Items:     items,
	}
}

func (uc *PriceListUseCase) get(ctx context.Context, id int64) (*entity.PriceList, error) {
	list, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	return list, nil
}

func toPriceListResponse(l *entity.PriceList) *dto.PriceListResponse {
	return &dto.PriceListResponse{
		ID:          l.ID,
		Code:        l.Code,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
