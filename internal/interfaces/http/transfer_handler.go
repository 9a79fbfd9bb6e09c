package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
)

type transferService interface {
	CreateTransfer(ctx context.Context, userID int64, in dto.CreateTransferRequest) (*dto.TransferResponse, error)
	ListTransfers(ctx context.Context, page dto.PageRequest) (*dto.TransferListResponse, error)
	GetTransfer(ctx context.Context, id int64) (*dto.TransferDetailResponse, error)
	Receipt(ctx context.Context, id int64) ([]byte, string, error)
}

// TransferHandler alta y consulta de transferencias entre bodegas.
type TransferHandler struct {
	uc transferService
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc transferService) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Transferir stock entre bodegas
// @Description  Crea la cabecera y los renglones y mueve las existencias en una sola transacción.
// @Description  El usuario se toma del token.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Bodegas y carrito"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID <= 0 {
		return writeError(c, "Transfers - CREATE", domain.ErrUnauthorized)
	}
	var in dto.CreateTransferRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.CreateTransfer(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, "Transfers - CREATE", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transferencias (más recientes primero)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListTransfers(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, "Transfers - LIST", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transferencia con renglones
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Transfers - GET", err)
	}
	out, err := h.uc.GetTransfer(c.UserContext(), id)
	if err != nil {
		return writeError(c, "Transfers - GET", err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la transferencia"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receipt [get]
func (h *TransferHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Transfers - RECEIPT", err)
	}
	pdf, filename, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, "Transfers - RECEIPT", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
