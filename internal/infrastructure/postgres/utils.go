package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/pos-inventario/internal/domain"
)

// SQLSTATE que el esquema de inventario puede disparar en escrituras.
var constraintErrors = map[string]error{
	"23505": domain.ErrDuplicate,    // unique_violation: código repetido, par producto/bodega
	"23503": domain.ErrInvalidInput, // foreign_key_violation
	"23514": domain.ErrInvalidInput, // check_violation: cantidad <= 0, origen = destino
}

// wrapWriteErr traduce violaciones de constraint a errores de dominio; el resto se envuelve con op.
func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if derr, ok := constraintErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, derr)
			}
			return fmt.Errorf("%s: %w", op, derr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectAffected: ErrNotFound si el comando no tocó filas.
func expectAffected(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return wrapWriteErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
