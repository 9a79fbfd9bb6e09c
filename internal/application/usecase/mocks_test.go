package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// fakeTx ejecuta fn directamente con los repos dados.
type fakeTx struct {
	repos repository.TxRepositories
	calls int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.TxRepositories) error) error {
	f.calls++
	return fn(f.repos)
}

// ── Warehouse ────────────────────────────────────────────────────────────────

type mockWarehouseRepo struct{ mock.Mock }

func (m *mockWarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockWarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*entity.Warehouse)
	return w, args.Error(1)
}

func (m *mockWarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockWarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*entity.Warehouse)
	return l, args.Error(1)
}

func (m *mockWarehouseRepo) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]int64)
	return l, args.Error(1)
}

func (m *mockWarehouseRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// ── Product ──────────────────────────────────────────────────────────────────

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit, offset)
	l, _ := args.Get(0).([]*entity.Product)
	return l, args.Error(1)
}

func (m *mockProductRepo) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]int64)
	return l, args.Error(1)
}

// ── Stock ────────────────────────────────────────────────────────────────────

type mockStockRepo struct{ mock.Mock }

func (m *mockStockRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	args := m.Called(ctx, productID, warehouseID)
	e, _ := args.Get(0).(*entity.StockEntry)
	return e, args.Error(1)
}

func (m *mockStockRepo) LockEntries(ctx context.Context, warehouseIDs, productIDs []int64) ([]*entity.StockEntry, error) {
	args := m.Called(ctx, warehouseIDs, productIDs)
	l, _ := args.Get(0).([]*entity.StockEntry)
	return l, args.Error(1)
}

func (m *mockStockRepo) SetQuantity(ctx context.Context, e *entity.StockEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockStockRepo) CreateMany(ctx context.Context, entries []*entity.StockEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockStockRepo) LockCatalog(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStockRepo) ListByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.StockEntry, error) {
	args := m.Called(ctx, warehouseID)
	l, _ := args.Get(0).([]*entity.StockEntry)
	return l, args.Error(1)
}

func (m *mockStockRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.StockEntry, error) {
	args := m.Called(ctx, productID)
	l, _ := args.Get(0).([]*entity.StockEntry)
	return l, args.Error(1)
}

// ── User / Role ──────────────────────────────────────────────────────────────

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRoleRepo struct{ mock.Mock }

func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*entity.Role)
	return r, args.Error(1)
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*entity.Role)
	return l, args.Error(1)
}

// ── PriceList ────────────────────────────────────────────────────────────────

type mockPriceListRepo struct{ mock.Mock }

func (m *mockPriceListRepo) Create(ctx context.Context, l *entity.PriceList) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockPriceListRepo) GetByID(ctx context.Context, id int64) (*entity.PriceList, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.PriceList)
	return l, args.Error(1)
}

func (m *mockPriceListRepo) Update(ctx context.Context, l *entity.PriceList) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockPriceListRepo) List(ctx context.Context) ([]*entity.PriceList, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*entity.PriceList)
	return l, args.Error(1)
}

func (m *mockPriceListRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPriceListRepo) AddPrice(ctx context.Context, p *entity.Price) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPriceListRepo) EffectivePrices(ctx context.Context, id int64, productID *int64) ([]repository.EffectivePrice, error) {
	args := m.Called(ctx, id, productID)
	l, _ := args.Get(0).([]repository.EffectivePrice)
	return l, args.Error(1)
}
