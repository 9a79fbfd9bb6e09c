package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo adaptador de listas de precios y precios.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador.
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

// Create inserta una lista. Código repetido: ErrDuplicate.
func (r *PriceListRepo) Create(ctx context.Context, l *entity.PriceList) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO pricelists (code, description, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		l.Code, l.Description, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		return wrapWriteErr("insert pricelist", err)
	}
	return nil
}

// GetByID obtiene una lista; nil si no existe.
func (r *PriceListRepo) GetByID(ctx context.Context, id int64) (*entity.PriceList, error) {
	var l entity.PriceList
	err := r.q.QueryRow(ctx,
		`SELECT id, code, description, created_at, updated_at FROM pricelists WHERE id = $1`, id,
	).Scan(&l.ID, &l.Code, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricelist: %w", err)
	}
	return &l, nil
}

// Update actualiza la descripción.
func (r *PriceListRepo) Update(ctx context.Context, l *entity.PriceList) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE pricelists SET description = $2, updated_at = $3 WHERE id = $1`, l.ID, l.Description, l.UpdatedAt)
	return expectAffected(tag, err, "update pricelist")
}

// List todas las listas por código.
func (r *PriceListRepo) List(ctx context.Context) ([]*entity.PriceList, error) {
	rows, err := r.q.Query(ctx, `SELECT id, code, description, created_at, updated_at FROM pricelists ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list pricelists: %w", err)
	}
	lists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.PriceList, error) {
		var l entity.PriceList
		err := row.Scan(&l.ID, &l.Code, &l.Description, &l.CreatedAt, &l.UpdatedAt)
		return &l, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect pricelists: %w", err)
	}
	return lists, nil
}

// Delete elimina la lista; sus precios caen por cascada.
func (r *PriceListRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pricelists WHERE id = $1`, id)
	return expectAffected(tag, err, "delete pricelist")
}

// AddPrice inserta un precio nuevo (historial; no se sobrescribe el anterior).
func (r *PriceListRepo) AddPrice(ctx context.Context, p *entity.Price) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO prices (pricelist_id, product_id, price, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.PriceListID, p.ProductID, p.Price, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return wrapWriteErr("insert price", err)
	}
	return nil
}

// EffectivePrices último precio por producto de la lista (DISTINCT ON por producto).
func (r *PriceListRepo) EffectivePrices(ctx context.Context, priceListID int64, productID *int64) ([]repository.EffectivePrice, error) {
	query := `
		SELECT DISTINCT ON (pr.product_id)
			p.id, p.code, p.barcode, p.name, p.description, p.status, p.allow_negative_stock,
			p.alert_low_stock, p.low_stock, p.created_at, p.updated_at, pr.price
		FROM prices pr
		JOIN products p ON p.id = pr.product_id
		WHERE pr.pricelist_id = $1 AND ($2::bigint IS NULL OR pr.product_id = $2)
		ORDER BY pr.product_id, pr.created_at DESC, pr.id DESC`
	rows, err := r.q.Query(ctx, query, priceListID, productID)
	if err != nil {
		return nil, fmt.Errorf("list effective prices: %w", err)
	}
	defer rows.Close()

	var out []repository.EffectivePrice
	for rows.Next() {
		var ep repository.EffectivePrice
		p := &ep.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Barcode, &p.Name, &p.Description, &p.Status,
			&p.AllowNegativeStock, &p.AlertLowStock, &p.LowStock, &p.CreatedAt, &p.UpdatedAt, &ep.Price); err != nil {
			return nil, fmt.Errorf("scan effective price: %w", err)
		}
		out = append(out, ep)
	}
	return out, rows.Err()
}
