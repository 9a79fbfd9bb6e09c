package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jhoicas/pos-inventario/pkg/config"
)

func newRecorder() (*tracetest.SpanRecorder, *queryTracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, newQueryTracer(tp)
}

func TestQueryTracer_SpanPorSentencia(t *testing.T) {
	sr, qt := newRecorder()

	ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
		SQL:  "  update stock set quantity = quantity - $1 where id = $2",
		Args: []any{3, 7},
	})
	qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("UPDATE 1")})

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "db.UPDATE", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "postgresql", attrs["db.system"])
	assert.Equal(t, int64(2), attrs["db.args"])
	assert.Equal(t, int64(1), attrs["db.rows_affected"])
}

func TestQueryTracer_ErrorMarcaSpan(t *testing.T) {
	sr, qt := newRecorder()

	ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("deadlock detected")})

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "deadlock detected", spans[0].Status().Description)
}

func TestQueryTracer_NoRowsNoEsError(t *testing.T) {
	sr, qt := newRecorder()

	ctx := qt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	qt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: pgx.ErrNoRows})

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
}

func TestSpanName(t *testing.T) {
	assert.Equal(t, "db.query", spanName("   "))
	assert.Equal(t, "db.WITH", spanName("with x as (select 1) select * from x"))
}

func TestPoolConfigFrom(t *testing.T) {
	cfg := config.DBConfig{Host: "127.0.0.1", Port: 5432, User: "pos", DBName: "inv", SSLMode: "disable"}

	pc, err := poolConfigFrom(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.Nil(t, pc.ConnConfig.Tracer)

	WithTracerProvider(nil)(pc)
	assert.Nil(t, pc.ConnConfig.Tracer)

	WithTracerProvider(sdktrace.NewTracerProvider())(pc)
	assert.IsType(t, &queryTracer{}, pc.ConnConfig.Tracer)
}

func TestPreferIPv4URL_SinHost(t *testing.T) {
	assert.Equal(t, "not a url %%", preferIPv4URL(context.Background(), "not a url %%"))
	assert.Equal(t, "postgres://10.0.0.5:6543/inv", preferIPv4URL(context.Background(), "postgres://10.0.0.5:6543/inv"))
}
