package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas (pool o tx).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, code, description, address, created_at, updated_at`

// Create persiste una nueva bodega y completa su ID.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (code, description, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, w.Code, w.Description, w.Address, w.CreatedAt, w.UpdatedAt).Scan(&w.ID)
	if err != nil {
		return wrapWriteErr("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID; nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Code, &w.Description, &w.Address, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza descripción y dirección.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `UPDATE warehouses SET description = $2, address = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, w.ID, w.Description, w.Address, w.UpdatedAt)
	return expectAffected(tag, err, "update warehouse")
}

// List lista todas las bodegas por código.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Description, &w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// ListIDs IDs de todas las bodegas (siembra de stock al crear producto).
func (r *WarehouseRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM warehouses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list warehouse ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect warehouse ids: %w", err)
	}
	return ids, nil
}

// Delete elimina una bodega. Con transferencias asociadas la FK lo impide (ErrInvalidInput).
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	return expectAffected(tag, err, "delete warehouse")
}
