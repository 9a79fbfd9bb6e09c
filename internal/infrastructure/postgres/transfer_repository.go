package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo persistencia de transferencias (cabecera en transfers, renglones en transfer_details).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador (pool o tx).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserta la cabecera y completa su ID.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (warehouse_origin_id, warehouse_destination_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.WarehouseOriginID, t.WarehouseDestinationID, t.UserID, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return wrapWriteErr("insert transfer", err)
	}
	return nil
}

// CreateLines inserta los renglones en un batch, en el orden recibido.
func (r *TransferRepo) CreateLines(ctx context.Context, lines []*entity.TransferLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO transfer_details (transfer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query, l.TransferID, l.ProductID, l.Quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, l := range lines {
		if err := br.QueryRow().Scan(&l.ID); err != nil {
			return wrapWriteErr("insert transfer detail", err)
		}
	}
	return br.Close()
}

const transferSelect = `
	SELECT t.id, t.warehouse_origin_id, t.warehouse_destination_id, t.user_id, t.created_at, t.updated_at,
		o.id, o.code, o.description, o.address,
		d.id, d.code, d.description, d.address,
		u.id, u.name, u.lastname, u.email
	FROM transfers t
	JOIN warehouses o ON o.id = t.warehouse_origin_id
	JOIN warehouses d ON d.id = t.warehouse_destination_id
	JOIN users u ON u.id = t.user_id`

func scanTransfer(row pgx.Row) (*repository.TransferView, error) {
	var v repository.TransferView
	err := row.Scan(
		&v.ID, &v.WarehouseOriginID, &v.WarehouseDestinationID, &v.UserID, &v.CreatedAt, &v.UpdatedAt,
		&v.Origin.ID, &v.Origin.Code, &v.Origin.Description, &v.Origin.Address,
		&v.Destination.ID, &v.Destination.Code, &v.Destination.Description, &v.Destination.Address,
		&v.User.ID, &v.User.Name, &v.User.Lastname, &v.User.Email,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID devuelve la transferencia con bodegas, usuario y renglones; nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id int64) (*repository.TransferView, error) {
	v, err := scanTransfer(r.q.QueryRow(ctx, transferSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.attachLines(ctx, []*repository.TransferView{v}); err != nil {
		return nil, err
	}
	return v, nil
}

// List transferencias más recientes primero.
func (r *TransferRepo) List(ctx context.Context, limit, offset int) ([]*repository.TransferView, error) {
	rows, err := r.q.Query(ctx, transferSelect+` ORDER BY t.created_at DESC, t.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransferView
	for rows.Next() {
		v, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	rows.Close()

	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga los renglones de todas las transferencias con una sola consulta.
func (r *TransferRepo) attachLines(ctx context.Context, views []*repository.TransferView) error {
	if len(views) == 0 {
		return nil
	}
	byID := make(map[int64]*repository.TransferView, len(views))
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}
	query := `
		SELECT td.id, td.transfer_id, td.product_id, td.quantity, p.code, p.name
		FROM transfer_details td
		JOIN products p ON p.id = td.product_id
		WHERE td.transfer_id = ANY($1)
		ORDER BY td.transfer_id, td.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list transfer details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l repository.TransferLineView
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.Quantity, &l.ProductCode, &l.ProductName); err != nil {
			return fmt.Errorf("scan transfer detail: %w", err)
		}
		if v, ok := byID[l.TransferID]; ok {
			v.Lines = append(v.Lines, l)
		}
	}
	return rows.Err()
}
