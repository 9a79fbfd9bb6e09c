package postgres

import (
	"context"
	"fmt"
)

// schema sentencias idempotentes, en orden de dependencia.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(50) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          VARCHAR(100) NOT NULL,
		lastname      VARCHAR(100) NOT NULL DEFAULT '',
		email         VARCHAR(150) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role_id       BIGINT NOT NULL REFERENCES roles(id),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS warehouses (
		id          BIGSERIAL PRIMARY KEY,
		code        VARCHAR(50) NOT NULL UNIQUE,
		description VARCHAR(200) NOT NULL,
		address     VARCHAR(255) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                   BIGSERIAL PRIMARY KEY,
		code                 VARCHAR(50) NOT NULL UNIQUE,
		barcode              VARCHAR(100) NOT NULL DEFAULT '',
		name                 VARCHAR(200) NOT NULL,
		description          TEXT NOT NULL DEFAULT '',
		status               VARCHAR(10) NOT NULL DEFAULT 'ENABLED' CHECK (status IN ('ENABLED', 'DISABLED')),
		allow_negative_stock BOOLEAN NOT NULL DEFAULT false,
		alert_low_stock      BOOLEAN NOT NULL DEFAULT false,
		low_stock            BIGINT NOT NULL DEFAULT 0,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stocks (
		id           BIGSERIAL PRIMARY KEY,
		product_id   BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		warehouse_id BIGINT NOT NULL REFERENCES warehouses(id) ON DELETE CASCADE,
		stock        BIGINT NOT NULL DEFAULT 0,
		prev_stock   BIGINT NOT NULL DEFAULT 0,
		prev_date    TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT stocks_product_warehouse_key UNIQUE (product_id, warehouse_id)
	)`,
	`CREATE INDEX IF NOT EXISTS stocks_warehouse_idx ON stocks (warehouse_id, product_id)`,
	`CREATE TABLE IF NOT EXISTS transfers (
		id                       BIGSERIAL PRIMARY KEY,
		warehouse_origin_id      BIGINT NOT NULL REFERENCES warehouses(id),
		warehouse_destination_id BIGINT NOT NULL REFERENCES warehouses(id),
		user_id                  BIGINT NOT NULL REFERENCES users(id),
		created_at               TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at               TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (warehouse_origin_id <> warehouse_destination_id)
	)`,
	`CREATE TABLE IF NOT EXISTS transfer_details (
		id          BIGSERIAL PRIMARY KEY,
		transfer_id BIGINT NOT NULL REFERENCES transfers(id) ON DELETE CASCADE,
		product_id  BIGINT NOT NULL REFERENCES products(id),
		quantity    BIGINT NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS transfer_details_transfer_idx ON transfer_details (transfer_id)`,
	`CREATE TABLE IF NOT EXISTS pricelists (
		id          BIGSERIAL PRIMARY KEY,
		code        VARCHAR(50) NOT NULL UNIQUE,
		description VARCHAR(200) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS prices (
		id           BIGSERIAL PRIMARY KEY,
		pricelist_id BIGINT NOT NULL REFERENCES pricelists(id) ON DELETE CASCADE,
		product_id   BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		price        NUMERIC(14, 2) NOT NULL CHECK (price >= 0),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS prices_list_product_idx ON prices (pricelist_id, product_id, created_at DESC)`,
	`INSERT INTO roles (name) VALUES ('ADMIN'), ('SELLER'), ('WAREHOUSE') ON CONFLICT (name) DO NOTHING`,
}

// Migrate aplica el esquema. Se puede ejecutar en cada arranque.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración %d: %w", i+1, err)
		}
	}
	return nil
}
