package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
)

type priceListService interface {
	Create(ctx context.Context, in dto.CreatePriceListRequest) (*dto.PriceListResponse, error)
	List(ctx context.Context) ([]dto.PriceListResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdatePriceListRequest) (*dto.PriceListResponse, error)
	Delete(ctx context.Context, id int64) error
	AddPrice(ctx context.Context, id int64, in dto.AddPriceRequest) (*dto.PriceResponse, error)
	WarehouseView(ctx context.Context, id, warehouseID int64) (*dto.PriceListWarehouseResponse, error)
	WarehouseProductView(ctx context.Context, id, warehouseID, productID int64) (*dto.PriceListWarehouseResponse, error)
}

// PriceListHandler listas de precios y su cruce con existencias.
type PriceListHandler struct {
	uc priceListService
}

func NewPriceListHandler(uc priceListService) *PriceListHandler {
	return &PriceListHandler{uc: uc}
}

// List godoc
// @Summary      Listar listas de precios
// @Tags         pricelists
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PriceListResponse
// @Router       /api/pricelists [get]
func (h *PriceListHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, "PriceLists - LIST", err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lista de precios
// @Tags         pricelists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceListRequest  true  "code, description"
// @Success      201   {object}  dto.PriceListResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pricelists [post]
func (h *PriceListHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceListRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "PriceLists - CREATE", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar descripción de la lista
// @Tags         pricelists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la lista"
// @Param        body  body  dto.UpdatePriceListRequest  true  "description"
// @Success      200   {object}  dto.PriceListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricelists/{id} [put]
func (h *PriceListHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "PriceLists - UPDATE", err)
	}
	var in dto.UpdatePriceListRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, "PriceLists - UPDATE", err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lista de precios
// @Tags         pricelists
// @Security     Bearer
// @Param        id   path  int  true  "ID de la lista"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pricelists/{id} [delete]
func (h *PriceListHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "PriceLists - DELETE", err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, "PriceLists - DELETE", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPrice godoc
// @Summary      Registrar precio de un producto (el último es el vigente)
// @Tags         pricelists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la lista"
// @Param        body  body  dto.AddPriceRequest  true  "productId, price"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricelists/{id}/prices [post]
func (h *PriceListHandler) AddPrice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "PriceLists - ADD PRICE", err)
	}
	var in dto.AddPriceRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.AddPrice(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, "PriceLists - ADD PRICE", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// WarehouseView godoc
// @Summary      Precios vigentes con existencias de una bodega
// @Tags         pricelists
// @Security     Bearer
// @Produce      json
// @Param        id           path  int  true  "ID de la lista"
// @Param        warehouseId  path  int  true  "ID de la bodega"
// @Success      200  {object}  dto.PriceListWarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pricelists/{id}/warehouses/{warehouseId} [get]
func (h *PriceListHandler) WarehouseView(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "PriceLists - WAREHOUSE", err)
	}
	warehouseID, err := paramID(c, "warehouseId")
	if err != nil {
		return writeError(c, "PriceLists - WAREHOUSE", err)
	}
	out, err := h.uc.WarehouseView(c.UserContext(), id, warehouseID)
	if err != nil {
		return writeError(c, "PriceLists - WAREHOUSE", err)
	}
	return c.JSON(out)
}

// WarehouseProductView godoc
// @Summary      Precio vigente y existencia de un producto en una bodega
// @Tags         pricelists
// @Security     Bearer
// @Produce      json
// @Param        id           path  int  true  "ID de la lista"
// @Param        warehouseId  path  int  true  "ID de la bodega"
// @Param        productId    path  int  true  "ID del producto"
// @Success      200  {object}  dto.PriceListWarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pricelists/{id}/warehouses/{warehouseId}/products/{productId} [get]
func (h *PriceListHandler) WarehouseProductView(c *fiber.Ctx) error {
	const op = "PriceLists - WAREHOUSE PRODUCT"
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, op, err)
	}
	warehouseID, err := paramID(c, "warehouseId")
	if err != nil {
		return writeError(c, op, err)
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return writeError(c, op, err)
	}
	out, err := h.uc.WarehouseProductView(c.UserContext(), id, warehouseID, productID)
	if err != nil {
		return writeError(c, op, err)
	}
	return c.JSON(out)
}
