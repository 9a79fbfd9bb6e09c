package inventory_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/inventory"
)

func entry(id, product, warehouse, stock int64, updated time.Time) *entity.StockEntry {
	return &entity.StockEntry{ID: id, ProductID: product, WarehouseID: warehouse, Stock: stock, UpdatedAt: updated}
}

// ──────────────────────────────────────────────────────────────────────────────
// AggregateCart
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateCart_SumaProductosRepetidos(t *testing.T) {
	totals, ids, err := inventory.AggregateCart([]inventory.CartLine{
		{ProductID: 9, Quantity: 2},
		{ProductID: 3, Quantity: 5},
		{ProductID: 9, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 9}, ids)
	assert.Equal(t, int64(3), totals[9])
	assert.Equal(t, int64(5), totals[3])
}

func TestAggregateCart_Invalidos(t *testing.T) {
	cases := map[string][]inventory.CartLine{
		"vacío":         nil,
		"cantidad cero": {{ProductID: 1, Quantity: 0}},
		"negativa":      {{ProductID: 1, Quantity: -4}},
		"sin producto":  {{ProductID: 0, Quantity: 1}},
		"suma desborda": {{ProductID: 7, Quantity: math.MaxInt64}, {ProductID: 7, Quantity: 1}},
	}
	for name, cart := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := inventory.AggregateCart(cart)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PlanTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanTransfer_MueveCantidadesYGuardaAnterior(t *testing.T) {
	before := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	now := before.Add(48 * time.Hour)
	// El orden de las filas no coincide con el del carrito.
	entries := []*entity.StockEntry{
		entry(4, 7, 2, 10, before),
		entry(1, 5, 1, 3, before),
		entry(3, 7, 1, 50, before),
		entry(2, 5, 2, 0, before),
	}
	totals, ids, err := inventory.AggregateCart([]inventory.CartLine{{ProductID: 7, Quantity: 12}, {ProductID: 5, Quantity: 3}})
	require.NoError(t, err)

	changes, err := inventory.PlanTransfer(1, 2, totals, ids, entries, now)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, int64(5), changes[0].ProductID)
	assert.Equal(t, int64(0), changes[0].Origin.Stock)
	assert.Equal(t, int64(3), changes[0].Destination.Stock)

	p7 := changes[1]
	assert.Equal(t, int64(38), p7.Origin.Stock)
	assert.Equal(t, int64(50), p7.Origin.PrevStock)
	assert.Equal(t, int64(22), p7.Destination.Stock)
	assert.Equal(t, int64(10), p7.Destination.PrevStock)
	assert.Equal(t, before, p7.Origin.PrevDate)
	assert.Equal(t, now, p7.Origin.UpdatedAt)
}

func TestPlanTransfer_FaltaRegistroDeStock(t *testing.T) {
	entries := []*entity.StockEntry{entry(1, 5, 1, 10, time.Now())}
	_, err := inventory.PlanTransfer(1, 2, map[int64]int64{5: 1}, []int64{5}, entries, time.Now())
	assert.ErrorIs(t, err, domain.ErrStockEntryNotFound)
}

func TestPlanTransfer_MismaBodega(t *testing.T) {
	_, err := inventory.PlanTransfer(3, 3, map[int64]int64{5: 1}, []int64{5}, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrSameWarehouse)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanTransfer_StockInsuficiente(t *testing.T) {
	entries := []*entity.StockEntry{entry(1, 5, 1, 2, time.Now()), entry(2, 5, 2, 0, time.Now())}
	_, err := inventory.PlanTransfer(1, 2, map[int64]int64{5: 3}, []int64{5}, entries, time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPlanTransfer_PermiteNegativo(t *testing.T) {
	origin := entry(1, 5, 1, 2, time.Now())
	origin.AllowNegative = true
	entries := []*entity.StockEntry{origin, entry(2, 5, 2, 0, time.Now())}

	changes, err := inventory.PlanTransfer(1, 2, map[int64]int64{5: 3}, []int64{5}, entries, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), changes[0].Origin.Stock)
	assert.Equal(t, int64(3), changes[0].Destination.Stock)
}

func TestPlanTransfer_Desborde(t *testing.T) {
	cases := map[string]struct {
		origin, dest, qty int64
	}{
		"destino pasa de MaxInt64": {origin: 50, dest: 10, qty: math.MaxInt64},
		"origen baja de MinInt64":  {origin: math.MinInt64 + 2, dest: 0, qty: 3},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			origin := entry(1, 7, 1, tc.origin, time.Now())
			origin.AllowNegative = true
			dest := entry(2, 7, 2, tc.dest, time.Now())

			_, err := inventory.PlanTransfer(1, 2, map[int64]int64{7: tc.qty}, []int64{7}, []*entity.StockEntry{origin, dest}, time.Now())
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tc.origin, origin.Stock, "sin cambios en origen")
			assert.Equal(t, tc.dest, dest.Stock, "sin cambios en destino")
		})
	}
}

func TestAggregateCart_CantidadMaximaSinDesborde(t *testing.T) {
	totals, _, err := inventory.AggregateCart([]inventory.CartLine{{ProductID: 7, Quantity: math.MaxInt64}})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), totals[7])
}
