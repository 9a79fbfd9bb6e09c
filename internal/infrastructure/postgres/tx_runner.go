package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/pos-inventario/internal/application/transfer"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var (
	_ transfer.TxRunner = (*TxRunner)(nil)
	_ usecase.TxRunner  = (*TxRunner)(nil)
)

// TxRunner agrupa los repos de inventario en una sola transacción READ COMMITTED.
// Los bloqueos FOR UPDATE de LockEntries son los que serializan transferencias concurrentes.
type TxRunner struct {
	pool   *pgxpool.Pool
	opts   pgx.TxOptions
	tracer trace.Tracer
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{
		pool:   pool,
		opts:   pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite},
		tracer: otel.Tracer(tracerName),
	}
}

// Run ejecuta fn con repos atados a la tx. Error de fn = rollback; nil = commit.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) (err error) {
	ctx, span := r.tracer.Start(ctx, "db.tx")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.BeginTx(ctx, r.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = fn(txRepositories(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func txRepositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Transfers:  NewTransferRepository(q),
		Stocks:     NewStockRepository(q),
		Warehouses: NewWarehouseRepository(q),
		Products:   NewProductRepository(q),
	}
}
