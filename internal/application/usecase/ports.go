package usecase

import (
	"context"

	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción (altas con siembra de stock).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error
}
