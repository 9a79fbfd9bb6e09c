package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error
}

// ReceiptGenerator genera el comprobante imprimible de una transferencia.
type ReceiptGenerator interface {
	GenerateTransferReceipt(ctx context.Context, transfer *repository.TransferView) ([]byte, error)
}

// EventPublisher publica eventos de transferencias confirmadas.
type EventPublisher interface {
	PublishTransfer(ctx context.Context, event Event) error
}

// EventTypeStockTransferred tipo del evento emitido tras el commit.
const EventTypeStockTransferred = "stock.transferred"

// Event evento de dominio de una transferencia confirmada.
type Event struct {
	EventID                string      `json:"eventId"`
	Type                   string      `json:"type"`
	TransferID             int64       `json:"transferId"`
	WarehouseOriginID      int64       `json:"warehouseOriginId"`
	WarehouseDestinationID int64       `json:"warehouseDestinationId"`
	UserID                 int64       `json:"userId"`
	Lines                  []EventLine `json:"lines"`
	OccurredAt             time.Time   `json:"occurredAt"`
}

// EventLine movimiento neto por producto.
type EventLine struct {
	ProductID   int64 `json:"productId"`
	Quantity    int64 `json:"quantity"`
	OriginStock int64 `json:"originStock"`
	DestStock   int64 `json:"destinationStock"`
}
