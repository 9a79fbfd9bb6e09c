package transfer_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/pos-inventario/internal/application/transfer"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// memStore base en memoria: Run serializa las transacciones y restaura el estado si fn falla.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	transfers  []*entity.Transfer
	lines      []*entity.TransferLine
	stocks     map[[2]int64]*entity.StockEntry // (producto, bodega)
	warehouses map[int64]*entity.Warehouse
	runs       int
}

func newMemStore() *memStore {
	return &memStore{
		stocks:     map[[2]int64]*entity.StockEntry{},
		warehouses: map[int64]*entity.Warehouse{},
	}
}

func (s *memStore) addWarehouse(id int64, code string) {
	s.warehouses[id] = &entity.Warehouse{ID: id, Code: code, Description: "Bodega " + code}
}

func (s *memStore) setStock(productID, warehouseID, qty int64, allowNegative bool) {
	s.nextID++
	s.stocks[[2]int64{productID, warehouseID}] = &entity.StockEntry{
		ID: s.nextID, ProductID: productID, WarehouseID: warehouseID, Stock: qty, AllowNegative: allowNegative,
	}
}

func (s *memStore) stock(productID, warehouseID int64) *entity.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *s.stocks[[2]int64{productID, warehouseID}]
	return &e
}

type snapshot struct {
	nextID    int64
	transfers []*entity.Transfer
	lines     []*entity.TransferLine
	stocks    map[[2]int64]entity.StockEntry
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		nextID:    s.nextID,
		transfers: append([]*entity.Transfer(nil), s.transfers...),
		lines:     append([]*entity.TransferLine(nil), s.lines...),
		stocks:    make(map[[2]int64]entity.StockEntry, len(s.stocks)),
	}
	for k, v := range s.stocks {
		snap.stocks[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.nextID = snap.nextID
	s.transfers = snap.transfers
	s.lines = snap.lines
	s.stocks = make(map[[2]int64]*entity.StockEntry, len(snap.stocks))
	for k, v := range snap.stocks {
		e := v
		s.stocks[k] = &e
	}
}

// Run implementa transfer.TxRunner.
func (s *memStore) Run(_ context.Context, fn func(repository.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	snap := s.snapshot()
	err := fn(repository.TxRepositories{
		Transfers:  &memTransfers{s: s, inTx: true},
		Stocks:     &memStocks{s: s},
		Warehouses: &memWarehouses{s: s},
	})
	if err != nil {
		s.restore(snap)
	}
	return err
}

var _ transfer.TxRunner = (*memStore)(nil)

// ── transferencias ───────────────────────────────────────────────────────────

type memTransfers struct {
	s    *memStore
	inTx bool
}

func (r *memTransfers) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memTransfers) Create(_ context.Context, t *entity.Transfer) error {
	defer r.lock()()
	r.s.nextID++
	t.ID = r.s.nextID
	cp := *t
	r.s.transfers = append(r.s.transfers, &cp)
	return nil
}

func (r *memTransfers) CreateLines(_ context.Context, lines []*entity.TransferLine) error {
	defer r.lock()()
	for _, l := range lines {
		r.s.nextID++
		l.ID = r.s.nextID
		cp := *l
		r.s.lines = append(r.s.lines, &cp)
	}
	return nil
}

func (r *memTransfers) GetByID(_ context.Context, id int64) (*repository.TransferView, error) {
	defer r.lock()()
	for _, t := range r.s.transfers {
		if t.ID == id {
			return r.view(t), nil
		}
	}
	return nil, nil
}

func (r *memTransfers) List(_ context.Context, limit, offset int) ([]*repository.TransferView, error) {
	defer r.lock()()
	var out []*repository.TransferView
	for i := len(r.s.transfers) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.view(r.s.transfers[i]))
	}
	return out, nil
}

func (r *memTransfers) view(t *entity.Transfer) *repository.TransferView {
	v := &repository.TransferView{
		Transfer:    *t,
		Origin:      *r.s.warehouses[t.WarehouseOriginID],
		Destination: *r.s.warehouses[t.WarehouseDestinationID],
		User:        entity.User{ID: t.UserID, Name: "Ana"},
	}
	for _, l := range r.s.lines {
		if l.TransferID == t.ID {
			v.Lines = append(v.Lines, repository.TransferLineView{TransferLine: *l, ProductName: "P"})
		}
	}
	return v
}

// ── stock ────────────────────────────────────────────────────────────────────

type memStocks struct{ s *memStore }

func (r *memStocks) Get(_ context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	e, ok := r.s.stocks[[2]int64{productID, warehouseID}]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memStocks) LockEntries(_ context.Context, warehouseIDs, productIDs []int64) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, w := range warehouseIDs {
		for _, p := range productIDs {
			if e, ok := r.s.stocks[[2]int64{p, w}]; ok {
				cp := *e
				out = append(out, &cp)
			}
		}
	}
	// Orden distinto al del carrito para comprobar que el emparejamiento es por clave.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memStocks) SetQuantity(_ context.Context, e *entity.StockEntry) error {
	cur, ok := r.s.stocks[[2]int64{e.ProductID, e.WarehouseID}]
	if !ok || cur.ID != e.ID {
		return errors.New("stock inexistente")
	}
	cp := *e
	r.s.stocks[[2]int64{e.ProductID, e.WarehouseID}] = &cp
	return nil
}

func (r *memStocks) CreateMany(_ context.Context, entries []*entity.StockEntry) error {
	for _, e := range entries {
		r.s.nextID++
		e.ID = r.s.nextID
		cp := *e
		r.s.stocks[[2]int64{e.ProductID, e.WarehouseID}] = &cp
	}
	return nil
}

// LockCatalog no hace nada: memStore.Run ya serializa las transacciones.
func (r *memStocks) LockCatalog(context.Context) error { return nil }

func (r *memStocks) ListByWarehouse(_ context.Context, warehouseID int64) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.s.stocks {
		if e.WarehouseID == warehouseID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStocks) ListByProduct(_ context.Context, productID int64) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, e := range r.s.stocks {
		if e.ProductID == productID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── bodegas ──────────────────────────────────────────────────────────────────

type memWarehouses struct{ s *memStore }

func (r *memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouses) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouses) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouses) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		out = append(out, w)
	}
	return out, nil
}

func (r *memWarehouses) ListIDs(_ context.Context) ([]int64, error) {
	var out []int64
	for id := range r.s.warehouses {
		out = append(out, id)
	}
	return out, nil
}

func (r *memWarehouses) Delete(_ context.Context, id int64) error {
	delete(r.s.warehouses, id)
	return nil
}

// ── receipt y eventos ────────────────────────────────────────────────────────

type fakeReceipt struct{}

func (fakeReceipt) GenerateTransferReceipt(_ context.Context, _ *repository.TransferView) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []transfer.Event
	err    error
}

func (p *recordingPublisher) PublishTransfer(_ context.Context, ev transfer.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}
