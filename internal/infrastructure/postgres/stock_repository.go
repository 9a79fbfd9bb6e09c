package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockSelect = `
	SELECT s.id, s.product_id, s.warehouse_id, s.stock, s.prev_stock, s.prev_date,
		s.created_at, s.updated_at, p.allow_negative_stock
	FROM stocks s
	JOIN products p ON p.id = s.product_id`

func scanStock(row pgx.Row) (*entity.StockEntry, error) {
	var s entity.StockEntry
	err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Stock, &s.PrevStock, &s.PrevDate,
		&s.CreatedAt, &s.UpdatedAt, &s.AllowNegative)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StockRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*entity.StockEntry
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Get obtiene la existencia de un producto en una bodega; nil si no hay registro.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	s, err := scanStock(r.q.QueryRow(ctx, stockSelect+` WHERE s.product_id = $1 AND s.warehouse_id = $2`,
		productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// LockEntries bloquea las filas (SELECT FOR UPDATE) siempre en el mismo orden
// (bodega, producto) para que dos transferencias concurrentes no se bloqueen mutuamente.
func (r *StockRepo) LockEntries(ctx context.Context, warehouseIDs, productIDs []int64) ([]*entity.StockEntry, error) {
	query := stockSelect + `
		WHERE s.warehouse_id = ANY($1) AND s.product_id = ANY($2)
		ORDER BY s.warehouse_id, s.product_id
		FOR UPDATE OF s`
	return r.list(ctx, "lock stocks", query, warehouseIDs, productIDs)
}

// SetQuantity sobrescribe cantidad, valor anterior y fechas del registro.
func (r *StockRepo) SetQuantity(ctx context.Context, e *entity.StockEntry) error {
	query := `
		UPDATE stocks SET stock = $2, prev_stock = $3, prev_date = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, e.ID, e.Stock, e.PrevStock, e.PrevDate, e.UpdatedAt)
	if err := expectAffected(tag, err, "update stock"); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: id %d", domain.ErrStockEntryNotFound, e.ID)
		}
		return err
	}
	return nil
}

// CreateMany inserta existencias en un único batch y completa sus IDs.
func (r *StockRepo) CreateMany(ctx context.Context, entries []*entity.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO stocks (product_id, warehouse_id, stock, prev_stock, prev_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.ProductID, e.WarehouseID, e.Stock, e.PrevStock, e.PrevDate, e.CreatedAt, e.UpdatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, e := range entries {
		if err := br.QueryRow().Scan(&e.ID); err != nil {
			return wrapWriteErr("insert stock", err)
		}
	}
	return br.Close()
}

// catalogLockKey clave del advisory lock compartido por las altas de productos y bodegas.
const catalogLockKey int64 = 0x706f735f63617461

// LockCatalog toma pg_advisory_xact_lock; se libera con el commit o rollback.
// Debe ir antes de leer la otra tabla: en READ COMMITTED cada sentencia posterior
// ve lo que confirmó quien tenía el lock.
func (r *StockRepo) LockCatalog(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, catalogLockKey); err != nil {
		return fmt.Errorf("lock catalog: %w", err)
	}
	return nil
}

// ListByWarehouse existencias de una bodega ordenadas por producto.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID int64) ([]*entity.StockEntry, error) {
	return r.list(ctx, "list stocks by warehouse",
		stockSelect+` WHERE s.warehouse_id = $1 ORDER BY s.product_id`, warehouseID)
}

// ListByProduct existencias de un producto ordenadas por bodega.
func (r *StockRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.StockEntry, error) {
	return r.list(ctx, "list stocks by product",
		stockSelect+` WHERE s.product_id = $1 ORDER BY s.warehouse_id`, productID)
}
