package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
	"github.com/jhoicas/pos-inventario/pkg/logger"
)

const tracerName = "pos-inventario/transfer"

// UseCase procesa transferencias de stock entre bodegas y sus consultas.
type UseCase struct {
	txRunner  TxRunner
	transfers repository.TransferRepository
	receipts  ReceiptGenerator
	events    EventPublisher
	log       zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewUseCase construye el caso de uso. events puede ser nil (sin publicación de eventos).
func NewUseCase(
	txRunner TxRunner,
	transfers repository.TransferRepository,
	receipts ReceiptGenerator,
	events EventPublisher,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		transfers: transfers,
		receipts:  receipts,
		events:    events,
		log:       log.With().Str("component", "transfer").Logger(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// CreateTransfer registra la cabecera, un renglón por ítem del carrito y mueve el stock
// de origen a destino, todo en una única transacción. Nada se persiste si algún paso falla.
// No es idempotente: repetir la petición repite el movimiento.
func (uc *UseCase) CreateTransfer(ctx context.Context, userID int64, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "transfer.create")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("transfer.warehouse_origin_id", in.WarehouseOriginID),
		attribute.Int64("transfer.warehouse_destination_id", in.WarehouseDestinationID),
		attribute.Int64("transfer.user_id", userID),
		attribute.Int("transfer.cart_size", len(in.Cart)),
	)

	totals, productIDs, err := validate(userID, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := uc.now()
	header := &entity.Transfer{
		WarehouseOriginID:      in.WarehouseOriginID,
		WarehouseDestinationID: in.WarehouseDestinationID,
		UserID:                 userID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	var changes []inventory.StockChange

	err = uc.txRunner.Run(ctx, func(r repository.TxRepositories) error {
		if err := ensureWarehouse(ctx, r.Warehouses, in.WarehouseOriginID, "origen"); err != nil {
			return err
		}
		if err := ensureWarehouse(ctx, r.Warehouses, in.WarehouseDestinationID, "destino"); err != nil {
			return err
		}

		if err := r.Transfers.Create(ctx, header); err != nil {
			return err
		}
		lines := make([]*entity.TransferLine, 0, len(in.Cart))
		for _, item := range in.Cart {
			lines = append(lines, &entity.TransferLine{
				TransferID: header.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
			})
		}
		if err := r.Transfers.CreateLines(ctx, lines); err != nil {
			return err
		}

		entries, err := r.Stocks.LockEntries(ctx,
			[]int64{in.WarehouseOriginID, in.WarehouseDestinationID}, productIDs)
		if err != nil {
			return err
		}
		changes, err = inventory.PlanTransfer(in.WarehouseOriginID, in.WarehouseDestinationID,
			totals, productIDs, entries, now)
		if err != nil {
			return err
		}
		for _, c := range changes {
			if err := r.Stocks.SetQuantity(ctx, c.Origin); err != nil {
				return err
			}
			if err := r.Stocks.SetQuantity(ctx, c.Destination); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l := logger.WithTrace(ctx, uc.log)
		l.Warn().Err(err).
			Int64("origin", in.WarehouseOriginID).
			Int64("destination", in.WarehouseDestinationID).
			Msg("transferencia rechazada")
		return nil, err
	}

	span.SetAttributes(attribute.Int64("transfer.id", header.ID))
	l := logger.WithTrace(ctx, uc.log)
	l.Info().
		Int64("transfer_id", header.ID).
		Int64("origin", header.WarehouseOriginID).
		Int64("destination", header.WarehouseDestinationID).
		Int("products", len(changes)).
		Msg("transferencia registrada")

	uc.publish(ctx, header, changes)
	return toTransferResponse(header), nil
}

// publish emite el evento después del commit; un fallo solo se registra en el log.
func (uc *UseCase) publish(ctx context.Context, header *entity.Transfer, changes []inventory.StockChange) {
	if uc.events == nil {
		return
	}
	ev := Event{
		EventID:                uuid.NewString(),
		Type:                   EventTypeStockTransferred,
		TransferID:             header.ID,
		WarehouseOriginID:      header.WarehouseOriginID,
		WarehouseDestinationID: header.WarehouseDestinationID,
		UserID:                 header.UserID,
		OccurredAt:             header.CreatedAt,
		Lines:                  make([]EventLine, 0, len(changes)),
	}
	for _, c := range changes {
		ev.Lines = append(ev.Lines, EventLine{
			ProductID:   c.ProductID,
			Quantity:    c.Quantity,
			OriginStock: c.Origin.Stock,
			DestStock:   c.Destination.Stock,
		})
	}
	if err := uc.events.PublishTransfer(ctx, ev); err != nil {
		l := logger.WithTrace(ctx, uc.log)
		l.Error().Err(err).Int64("transfer_id", header.ID).Msg("no se pudo publicar el evento de transferencia")
	}
}

// ListTransfers lista transferencias, las más recientes primero.
func (uc *UseCase) ListTransfers(ctx context.Context, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	views, err := uc.transfers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferDetailResponse, 0, len(views))
	for _, v := range views {
		items = append(items, *toTransferDetail(v))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetTransfer devuelve la transferencia con sus renglones.
func (uc *UseCase) GetTransfer(ctx context.Context, id int64) (*dto.TransferDetailResponse, error) {
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTransferDetail(v), nil
}

// Receipt genera el PDF de la transferencia y el nombre de archivo sugerido.
func (uc *UseCase) Receipt(ctx context.Context, id int64) ([]byte, string, error) {
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.GenerateTransferReceipt(ctx, v)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("transferencia-%d.pdf", v.ID), nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*repository.TransferView, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	v, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func validate(userID int64, in dto.CreateTransferRequest) (map[int64]int64, []int64, error) {
	if userID <= 0 {
		return nil, nil, fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	if in.WarehouseOriginID <= 0 || in.WarehouseDestinationID <= 0 {
		return nil, nil, fmt.Errorf("%w: bodegas de origen y destino requeridas", domain.ErrInvalidInput)
	}
	if in.WarehouseOriginID == in.WarehouseDestinationID {
		return nil, nil, domain.ErrSameWarehouse
	}
	cart := make([]inventory.CartLine, 0, len(in.Cart))
	for _, item := range in.Cart {
		cart = append(cart, inventory.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return inventory.AggregateCart(cart)
}

func ensureWarehouse(ctx context.Context, repo repository.WarehouseRepository, id int64, role string) error {
	w, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: bodega de %s %d", domain.ErrNotFound, role, id)
	}
	return nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:                     t.ID,
		WarehouseOriginID:      t.WarehouseOriginID,
		WarehouseDestinationID: t.WarehouseDestinationID,
		UserID:                 t.UserID,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

func toTransferDetail(v *repository.TransferView) *dto.TransferDetailResponse {
	out := &dto.TransferDetailResponse{
		TransferResponse: *toTransferResponse(&v.Transfer),
		WarehouseOrigin: dto.WarehouseSummary{
			ID: v.Origin.ID, Code: v.Origin.Code, Description: v.Origin.Description,
		},
		WarehouseDestination: dto.WarehouseSummary{
			ID: v.Destination.ID, Code: v.Destination.Code, Description: v.Destination.Description,
		},
		User: dto.UserSummary{
			ID: v.User.ID, Name: v.User.Name, Lastname: v.User.Lastname, Email: v.User.Email,
		},
		Details: make([]dto.TransferLineResponse, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		out.Details = append(out.Details, dto.TransferLineResponse{
			ID:       l.ID,
			Product:  dto.ProductSummary{ID: l.ProductID, Code: l.ProductCode, Name: l.ProductName},
			Quantity: l.Quantity,
		})
	}
	return out
}
