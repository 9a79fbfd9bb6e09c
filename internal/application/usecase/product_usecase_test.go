package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

func newProductUC() (*usecase.ProductUseCase, *mockProductRepo, *mockWarehouseRepo, *mockStockRepo) {
	prod, wh, st := new(mockProductRepo), new(mockWarehouseRepo), new(mockStockRepo)
	tx := &fakeTx{repos: repository.TxRepositories{Warehouses: wh, Products: prod, Stocks: st}}
	st.On("LockCatalog", mock.Anything).Return(nil).Maybe()
	return usecase.NewProductUseCase(prod, tx), prod, wh, st
}

func TestProductCreate_SiembraUnaExistenciaPorBodega(t *testing.T) {
	uc, prod, wh, st := newProductUC()
	ctx := context.Background()

	prod.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Product).ID = 7 }).
		Return(nil)
	wh.On("ListIDs", ctx).Return([]int64{1, 2, 3}, nil)
	st.On("CreateMany", ctx, mock.MatchedBy(func(entries []*entity.StockEntry) bool {
		return len(entries) == 3 && entries[0].ProductID == 7 && entries[2].WarehouseID == 3
	})).Return(nil)

	res, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-7", Name: "Café molido 500g"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, entity.StatusEnabled, res.Status)
	st.AssertExpectations(t)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc, prod, wh, st := newProductUC()
	ctx := context.Background()
	prod.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-7", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	wh.AssertNotCalled(t, "ListIDs", mock.Anything)
	st.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestProductUpdate_StatusInvalido(t *testing.T) {
	uc, prod, _, _ := newProductUC()
	prod.On("GetByID", mock.Anything, int64(7)).Return(&entity.Product{ID: 7, Status: entity.StatusEnabled}, nil)

	bad := "BORRADO"
	_, err := uc.Update(context.Background(), 7, dto.UpdateProductRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	prod.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUpdate_CamposParciales(t *testing.T) {
	uc, prod, _, _ := newProductUC()
	ctx := context.Background()
	prod.On("GetByID", ctx, int64(7)).Return(&entity.Product{ID: 7, Code: "P-7", Name: "Viejo", Status: entity.StatusEnabled}, nil)
	prod.On("Update", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Nuevo" && p.AllowNegativeStock && p.Code == "P-7"
	})).Return(nil)

	name, allow := "Nuevo", true
	res, err := uc.Update(ctx, 7, dto.UpdateProductRequest{Name: &name, AllowNegativeStock: &allow})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", res.Name)
	prod.AssertExpectations(t)
}

func TestProductList_PaginaPorDefecto(t *testing.T) {
	uc, prod, _, _ := newProductUC()
	prod.On("List", mock.Anything, 20, 0).Return([]*entity.Product{{ID: 1}}, nil)

	res, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 20, res.Page.Limit)
}

// El lock del catálogo va antes del alta y de leer las bodegas.
func TestProductCreate_BloqueaCatalogoAntesDeSembrar(t *testing.T) {
	prod, wh, st := new(mockProductRepo), new(mockWarehouseRepo), new(mockStockRepo)
	tx := &fakeTx{repos: repository.TxRepositories{Warehouses: wh, Products: prod, Stocks: st}}
	uc := usecase.NewProductUseCase(prod, tx)
	ctx := context.Background()

	var order []string
	st.On("LockCatalog", ctx).Run(func(mock.Arguments) { order = append(order, "lock") }).Return(nil)
	prod.On("Create", ctx, mock.Anything).Run(func(mock.Arguments) { order = append(order, "create") }).Return(nil)
	wh.On("ListIDs", ctx).Run(func(mock.Arguments) { order = append(order, "list") }).Return([]int64{}, nil)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "P-8", Name: "Azúcar 1kg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "create", "list"}, order)
}
