package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/pos-inventario/pkg/config"
)

const (
	defaultMaxConns = 25
	dialTimeout     = 5 * time.Second
)

// PoolOption ajusta la configuración del pool antes de abrirlo.
type PoolOption func(*pgxpool.Config)

// WithTracerProvider registra spans por consulta SQL con el provider dado.
func WithTracerProvider(tp trace.TracerProvider) PoolOption {
	return func(pc *pgxpool.Config) {
		if tp != nil {
			pc.ConnConfig.Tracer = newQueryTracer(tp)
		}
	}
}

// NewPool abre el pool de inventario y verifica la conexión con un ping.
// Los NUMERIC (precios, cantidades) se decodifican como decimal.Decimal.
func NewPool(ctx context.Context, cfg config.DBConfig, opts ...PoolOption) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfigFrom(ctx, cfg)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(poolConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func poolConfigFrom(ctx context.Context, cfg config.DBConfig) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if cfg.DatabaseURL != "" {
		dsn = preferIPv4URL(ctx, cfg.DatabaseURL)
	} else if ipv4, err := firstIPv4(ctx, cfg.Host); err == nil {
		cfg.Host = ipv4
		dsn = cfg.DSN()
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	pc.ConnConfig.DialFunc = dialIPv4
	pc.MaxConns = int32(maxConnsOrDefault(cfg.MaxConns))
	pc.MinConns = 2
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute
	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

func maxConnsOrDefault(n int) int {
	if n <= 0 {
		return defaultMaxConns
	}
	return n
}

// dialIPv4 fuerza tcp4 cuando el host tiene IPv4 (contenedores sin IPv6).
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: dialTimeout}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := firstIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

func firstIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s no es IPv4", host)
		}
		return host, nil
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("sin IPv4 para %s", host)
	}
	return ips[0].String(), nil
}

// preferIPv4URL devuelve la URL con el host resuelto a IPv4, o la original si no se puede.
func preferIPv4URL(ctx context.Context, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	ipv4, err := firstIPv4(ctx, u.Hostname())
	if err != nil {
		return raw
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
