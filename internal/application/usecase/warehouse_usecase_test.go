package usecase_test

import (
	"context"
	"errors"
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

func newWarehouseUC() (*usecase.WarehouseUseCase, *mockWarehouseRepo, *mockProductRepo, *mockStockRepo, *fakeTx) {
	wh, prod, st := new(mockWarehouseRepo), new(mockProductRepo), new(mockStockRepo)
	tx := &fakeTx{repos: repository.TxRepositories{Warehouses: wh, Products: prod, Stocks: st}}
	st.On("LockCatalog", mock.Anything).Return(nil).Maybe()
	return usecase.NewWarehouseUseCase(wh, st, tx), wh, prod, st, tx
}

func TestWarehouseCreate_SiembraStockEnCero(t *testing.T) {
	uc, wh, prod, st, tx := newWarehouseUC()
	ctx := context.Background()

	wh.On("Create", ctx, mock.AnythingOfType("*entity.Warehouse")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Warehouse).ID = 9 }).
		Return(nil)
	prod.On("ListIDs", ctx).Return([]int64{3, 4}, nil)
	st.On("CreateMany", ctx, mock.MatchedBy(func(entries []*entity.StockEntry) bool {
		if len(entries) != 2 {
			return false
		}
		for _, e := range entries {
			if e.WarehouseID != 9 || e.Stock != 0 {
				return false
			}
		}
		return entries[0].ProductID == 3 && entries[1].ProductID == 4
	})).Return(nil)

	res, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "B03", Description: "Sucursal norte"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.ID)
	assert.Equal(t, 1, tx.calls)
	wh.AssertExpectations(t)
	prod.AssertExpectations(t)
	st.AssertExpectations(t)
}

func TestWarehouseCreate_FalloAlSembrarPropagaError(t *testing.T) {
	uc, wh, prod, st, _ := newWarehouseUC()
	ctx := context.Background()
	boom := errors.New("boom")

	wh.On("Create", ctx, mock.Anything).Return(nil)
	prod.On("ListIDs", ctx).Return([]int64{1}, nil)
	st.On("CreateMany", ctx, mock.Anything).Return(boom)

	_, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "B03", Description: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestWarehouseCreate_SinProductosNoSiembra(t *testing.T) {
	uc, wh, prod, st, _ := newWarehouseUC()
	ctx := context.Background()

	wh.On("Create", ctx, mock.Anything).Return(nil)
	prod.On("ListIDs", ctx).Return([]int64{}, nil)

	_, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "B03", Description: "x"})
	require.NoError(t, err)
	st.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestWarehouseCreate_DatosInvalidos(t *testing.T) {
	uc, _, _, _, tx := newWarehouseUC()
	_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Code: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, tx.calls)
}

func TestWarehouseGetByID_NoExiste(t *testing.T) {
	uc, wh, _, _, _ := newWarehouseUC()
	wh.On("GetByID", mock.Anything, int64(5)).Return(nil, nil)

	_, err := uc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseList_ConYSinStock(t *testing.T) {
	uc, wh, _, st, _ := newWarehouseUC()
	ctx := context.Background()
	wh.On("List", ctx).Return([]*entity.Warehouse{{ID: 1, Code: "B01"}}, nil)
	st.On("ListByWarehouse", ctx, int64(1)).Return([]*entity.StockEntry{{ID: 1, ProductID: 2, WarehouseID: 1, Stock: 4}}, nil).Once()

	withStock, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, withStock, 1)
	require.Len(t, withStock[0].Stocks, 1)
	assert.Equal(t, int64(4), withStock[0].Stocks[0].Stock)

	bare, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Nil(t, bare[0].Stocks)
	st.AssertNumberOfCalls(t, "ListByWarehouse", 1)
}

func TestStockList_RequiereUnFiltro(t *testing.T) {
	st := new(mockStockRepo)
	uc := usecase.NewStockUseCase(st)
	ctx := context.Background()

	_, err := uc.List(ctx, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	st.On("ListByProduct", ctx, int64(2)).Return(nil, nil)
	out, err := uc.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestStockList_ParProductoBodega(t *testing.T) {
	st := new(mockStockRepo)
	uc := usecase.NewStockUseCase(st)
	ctx := context.Background()

	st.On("Get", ctx, int64(7), int64(1)).Return(&entity.StockEntry{ID: 3, ProductID: 7, WarehouseID: 1, Stock: 50}, nil).Once()
	st.On("Get", ctx, int64(8), int64(1)).Return(nil, nil).Once()

	out, err := uc.List(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(50), out[0].Stock)

	_, err = uc.List(ctx, 1, 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El lock del catálogo va antes del alta y de leer los productos.
func TestWarehouseCreate_BloqueaCatalogoAntesDeSembrar(t *testing.T) {
	wh, prod, st := new(mockWarehouseRepo), new(mockProductRepo), new(mockStockRepo)
	tx := &fakeTx{repos: repository.TxRepositories{Warehouses: wh, Products: prod, Stocks: st}}
	uc := usecase.NewWarehouseUseCase(wh, st, tx)
	ctx := context.Background()

	var order []string
	st.On("LockCatalog", ctx).Run(func(mock.Arguments) { order = append(order, "lock") }).Return(nil)
	wh.On("Create", ctx, mock.Anything).Run(func(mock.Arguments) { order = append(order, "create") }).Return(nil)
	prod.On("ListIDs", ctx).Run(func(mock.Arguments) { order = append(order, "list") }).Return([]int64{}, nil)

	_, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "B04", Description: "Sucursal sur"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "create", "list"}, order)
}

func TestWarehouseCreate_FalloDelLockNoCrea(t *testing.T) {
	wh, prod, st := new(mockWarehouseRepo), new(mockProductRepo), new(mockStockRepo)
	tx := &fakeTx{repos: repository.TxRepositories{Warehouses: wh, Products: prod, Stocks: st}}
	uc := usecase.NewWarehouseUseCase(wh, st, tx)
	ctx := context.Background()
	lockErr := errors.New("lock timeout")
	st.On("LockCatalog", ctx).Return(lockErr)

	_, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "B04", Description: "Sucursal sur"})
	assert.ErrorIs(t, err, lockErr)
	wh.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	prod.AssertNotCalled(t, "ListIDs", mock.Anything)
}
