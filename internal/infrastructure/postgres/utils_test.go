package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/domain"
)

func TestWrapWriteErr_TraduceConstraints(t *testing.T) {
	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_code_key"})
	assert.ErrorIs(t, wrapWriteErr("insert product", dup), domain.ErrDuplicate)

	fk := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, wrapWriteErr("delete warehouse", fk), domain.ErrInvalidInput)

	check := &pgconn.PgError{Code: "23514", ConstraintName: "transfer_details_quantity_check"}
	err := wrapWriteErr("insert detail", check)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "transfer_details_quantity_check")

	other := errors.New("conexión cerrada")
	err = wrapWriteErr("insert stock", other)
	assert.ErrorIs(t, err, other)
	assert.False(t, errors.Is(err, domain.ErrDuplicate))
}

func TestExpectAffected(t *testing.T) {
	assert.ErrorIs(t, expectAffected(pgconn.NewCommandTag("UPDATE 0"), nil, "update"), domain.ErrNotFound)
	assert.NoError(t, expectAffected(pgconn.NewCommandTag("UPDATE 1"), nil, "update"))
}

// execRecorder Querier mínimo que solo registra Exec.
type execRecorder struct {
	stmts []string
	fail  int
}

func (e *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	e.stmts = append(e.stmts, sql)
	if e.fail > 0 && len(e.stmts) == e.fail {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row { return nil }
func (e *execRecorder) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func TestMigrate_OrdenDeDependencias(t *testing.T) {
	rec := &execRecorder{}
	require.NoError(t, Migrate(context.Background(), rec))
	require.Len(t, rec.stmts, len(schema))

	pos := func(table string) int {
		for i, s := range rec.stmts {
			if strings.Contains(s, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				return i
			}
		}
		t.Fatalf("tabla %s no creada", table)
		return -1
	}
	assert.Less(t, pos("products"), pos("stocks"))
	assert.Less(t, pos("warehouses"), pos("stocks"))
	assert.Less(t, pos("users"), pos("transfers"))
	assert.Less(t, pos("transfers"), pos("transfer_details"))
	assert.Contains(t, rec.stmts[pos("stocks")], "UNIQUE (product_id, warehouse_id)")
}

func TestMigrate_DetieneEnElPrimerError(t *testing.T) {
	rec := &execRecorder{fail: 3}
	err := Migrate(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migración 3")
	assert.Len(t, rec.stmts, 3)
}

func TestStockRepo_LockCatalogUsaAdvisoryLockDeTransaccion(t *testing.T) {
	rec := &execRecorder{}
	require.NoError(t, NewStockRepository(rec).LockCatalog(context.Background()))
	require.Len(t, rec.stmts, 1)
	assert.Contains(t, rec.stmts[0], "pg_advisory_xact_lock")

	failing := &execRecorder{fail: 1}
	assert.Error(t, NewStockRepository(failing).LockCatalog(context.Background()))
}
