package transfer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/transfer"
	"github.com/jhoicas/pos-inventario/internal/domain"
)

const (
	origin      int64 = 1
	destination int64 = 2
	userID      int64 = 77
)

func setup(t *testing.T) (*memStore, *recordingPublisher, *transfer.UseCase) {
	t.Helper()
	store := newMemStore()
	store.addWarehouse(origin, "B01")
	store.addWarehouse(destination, "B02")
	pub := &recordingPublisher{}
	uc := transfer.NewUseCase(store, &memTransfers{s: store}, fakeReceipt{}, pub, zerolog.Nop())
	return store, pub, uc
}

func request(cart ...dto.CartItem) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		WarehouseOriginID:      origin,
		WarehouseDestinationID: destination,
		Cart:                   cart,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateTransfer: movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransfer_MueveStockYRegistraAnterior(t *testing.T) {
	store, pub, uc := setup(t)
	store.setStock(7, origin, 50, false)
	store.setStock(7, destination, 10, false)

	res, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 7, Quantity: 12}))
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, origin, res.WarehouseOriginID)
	assert.Equal(t, destination, res.WarehouseDestinationID)
	assert.Equal(t, userID, res.UserID)

	o := store.stock(7, origin)
	d := store.stock(7, destination)
	assert.Equal(t, int64(38), o.Stock)
	assert.Equal(t, int64(50), o.PrevStock)
	assert.Equal(t, int64(22), d.Stock)
	assert.Equal(t, int64(10), d.PrevStock)

	require.Len(t, store.transfers, 1)
	require.Len(t, store.lines, 1)
	assert.Equal(t, res.ID, store.lines[0].TransferID)
	assert.Equal(t, int64(12), store.lines[0].Quantity)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, transfer.EventTypeStockTransferred, ev.Type)
	assert.Equal(t, res.ID, ev.TransferID)
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, []transfer.EventLine{{ProductID: 7, Quantity: 12, OriginStock: 38, DestStock: 22}}, ev.Lines)
}

func TestCreateTransfer_VariosProductos(t *testing.T) {
	store, _, uc := setup(t)
	for p := int64(1); p <= 3; p++ {
		store.setStock(p, origin, 10*p, false)
		store.setStock(p, destination, 0, false)
	}

	_, err := uc.CreateTransfer(context.Background(), userID, request(
		dto.CartItem{ProductID: 3, Quantity: 5},
		dto.CartItem{ProductID: 1, Quantity: 1},
		dto.CartItem{ProductID: 2, Quantity: 20},
	))
	require.NoError(t, err)

	assert.Len(t, store.transfers, 1)
	assert.Len(t, store.lines, 3)
	assert.Equal(t, int64(25), store.stock(3, origin).Stock)
	assert.Equal(t, int64(5), store.stock(3, destination).Stock)
	assert.Equal(t, int64(9), store.stock(1, origin).Stock)
	assert.Equal(t, int64(1), store.stock(1, destination).Stock)
	assert.Equal(t, int64(0), store.stock(2, origin).Stock)
	assert.Equal(t, int64(20), store.stock(2, destination).Stock)
}

func TestCreateTransfer_ProductoRepetidoSumaCantidades(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(4, origin, 10, false)
	store.setStock(4, destination, 0, false)

	_, err := uc.CreateTransfer(context.Background(), userID, request(
		dto.CartItem{ProductID: 4, Quantity: 2},
		dto.CartItem{ProductID: 4, Quantity: 3},
	))
	require.NoError(t, err)

	assert.Len(t, store.lines, 2, "un renglón por ítem del carrito")
	assert.Equal(t, int64(5), store.stock(4, origin).Stock)
	assert.Equal(t, int64(10), store.stock(4, origin).PrevStock)
	assert.Equal(t, int64(5), store.stock(4, destination).Stock)
}

func TestCreateTransfer_RepetirDuplicaElEfecto(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(7, origin, 50, false)
	store.setStock(7, destination, 10, false)
	req := request(dto.CartItem{ProductID: 7, Quantity: 12})

	first, err := uc.CreateTransfer(context.Background(), userID, req)
	require.NoError(t, err)
	second, err := uc.CreateTransfer(context.Background(), userID, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.transfers, 2)
	assert.Equal(t, int64(26), store.stock(7, origin).Stock)
	assert.Equal(t, int64(38), store.stock(7, origin).PrevStock)
	assert.Equal(t, int64(34), store.stock(7, destination).Stock)
}

func TestCreateTransfer_Concurrentes(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(7, origin, 50, false)
	store.setStock(7, destination, 0, false)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 7, Quantity: 1}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int64(30), store.stock(7, origin).Stock)
	assert.Equal(t, int64(20), store.stock(7, destination).Stock)
	assert.Len(t, store.transfers, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateTransfer: rechazos sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransfer_FaltaStockEnOrigenNoPersisteNada(t *testing.T) {
	store, pub, uc := setup(t)
	// Producto 1 (A) sin registro en origen; producto 2 (B) con registros en ambas.
	store.setStock(1, destination, 5, false)
	store.setStock(2, origin, 8, false)
	store.setStock(2, destination, 1, false)

	_, err := uc.CreateTransfer(context.Background(), userID, request(
		dto.CartItem{ProductID: 1, Quantity: 1},
		dto.CartItem{ProductID: 2, Quantity: 2},
	))
	require.ErrorIs(t, err, domain.ErrStockEntryNotFound)

	assert.Empty(t, store.transfers)
	assert.Empty(t, store.lines)
	assert.Equal(t, int64(8), store.stock(2, origin).Stock)
	assert.Equal(t, int64(1), store.stock(2, destination).Stock)
	assert.Empty(t, pub.events)
}

func TestCreateTransfer_StockInsuficienteRevierte(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(1, origin, 10, false)
	store.setStock(1, destination, 0, false)
	store.setStock(2, origin, 1, false)
	store.setStock(2, destination, 0, false)

	_, err := uc.CreateTransfer(context.Background(), userID, request(
		dto.CartItem{ProductID: 1, Quantity: 4},
		dto.CartItem{ProductID: 2, Quantity: 3},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, store.transfers)
	assert.Equal(t, int64(10), store.stock(1, origin).Stock)
	assert.Equal(t, int64(0), store.stock(1, destination).Stock)
}

func TestCreateTransfer_PermiteNegativoSiElProductoLoAdmite(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(1, origin, 1, true)
	store.setStock(1, destination, 0, true)

	_, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 3}))
	require.NoError(t, err)
	assert.Equal(t, int64(-2), store.stock(1, origin).Stock)
}

func TestCreateTransfer_Validaciones(t *testing.T) {
	cases := map[string]struct {
		user int64
		req  dto.CreateTransferRequest
	}{
		"misma bodega":  {userID, dto.CreateTransferRequest{WarehouseOriginID: 1, WarehouseDestinationID: 1, Cart: []dto.CartItem{{ProductID: 1, Quantity: 1}}}},
		"sin origen":    {userID, dto.CreateTransferRequest{WarehouseDestinationID: 2, Cart: []dto.CartItem{{ProductID: 1, Quantity: 1}}}},
		"carrito vacío": {userID, request()},
		"cantidad cero": {userID, request(dto.CartItem{ProductID: 1, Quantity: 0})},
		"sin usuario":   {0, request(dto.CartItem{ProductID: 1, Quantity: 1})},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store, _, uc := setup(t)
			_, err := uc.CreateTransfer(context.Background(), tc.user, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, store.runs, "no debe abrir transacción")
		})
	}
}

func TestCreateTransfer_BodegaInexistente(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(1, origin, 5, false)

	req := request(dto.CartItem{ProductID: 1, Quantity: 1})
	req.WarehouseDestinationID = 99
	_, err := uc.CreateTransfer(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.transfers)
}

func TestCreateTransfer_FalloAlPublicarNoFallaLaPeticion(t *testing.T) {
	store, pub, uc := setup(t)
	pub.err = errors.New("broker caído")
	store.setStock(1, origin, 5, false)
	store.setStock(1, destination, 0, false)

	_, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
	assert.Equal(t, int64(3), store.stock(1, origin).Stock)
}

func TestCreateTransfer_SinPublisher(t *testing.T) {
	store := newMemStore()
	store.addWarehouse(origin, "B01")
	store.addWarehouse(destination, "B02")
	store.setStock(1, origin, 5, false)
	store.setStock(1, destination, 0, false)
	uc := transfer.NewUseCase(store, &memTransfers{s: store}, fakeReceipt{}, nil, zerolog.Nop())

	_, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTransfer_ConRenglones(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(1, origin, 5, false)
	store.setStock(1, destination, 0, false)
	created, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)

	got, err := uc.GetTransfer(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B01", got.WarehouseOrigin.Code)
	assert.Equal(t, "B02", got.WarehouseDestination.Code)
	require.Len(t, got.Details, 1)
	assert.Equal(t, int64(2), got.Details[0].Quantity)

	_, err = uc.GetTransfer(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTransfers_MasRecientePrimero(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(1, origin, 5, false)
	store.setStock(1, destination, 0, false)
	first, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	second, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)

	list, err := uc.ListTransfers(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID)
	assert.Equal(t, first.ID, list.Items[1].ID)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestReceipt_DevuelvePDFYNombre(t *testing.T) {
	store, _, uc := setup(t)
	store.setStock(1, origin, 5, false)
	store.setStock(1, destination, 0, false)
	created, err := uc.CreateTransfer(context.Background(), userID, request(dto.CartItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)

	pdf, name, err := uc.Receipt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
	assert.Contains(t, name, ".pdf")
}
