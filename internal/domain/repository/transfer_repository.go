package repository

import (
	"context"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// TransferLineView renglón con datos del producto.
type TransferLineView struct {
	entity.TransferLine
	ProductCode string
	ProductName string
}

// TransferView transferencia con bodegas, usuario y renglones (consultas y comprobante).
type TransferView struct {
	entity.Transfer
	Origin      entity.Warehouse
	Destination entity.Warehouse
	User        entity.User // sin PasswordHash
	Lines       []TransferLineView
}

// TransferRepository define el puerto de persistencia de transferencias.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	CreateLines(ctx context.Context, lines []*entity.TransferLine) error
	GetByID(ctx context.Context, id int64) (*TransferView, error)
	List(ctx context.Context, limit, offset int) ([]*TransferView, error)
}
