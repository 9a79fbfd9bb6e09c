package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
)

type warehouseService interface {
	Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error)
	List(ctx context.Context, withStock bool) ([]dto.WarehouseResponse, error)
	Delete(ctx context.Context, id int64) error
}

// WarehouseHandler maneja las peticiones HTTP para Warehouse (protegido).
type WarehouseHandler struct {
	uc warehouseService
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc warehouseService) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega (con stock en cero para todos los productos)
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "Warehouses - CREATE", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega con existencias
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Warehouses - GET", err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, "Warehouses - GET", err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        nostock  query  bool  false  "true = sin existencias"  default(false)
// @Success      200      {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	withStock := !c.QueryBool("nostock", false)
	out, err := h.uc.List(c.UserContext(), withStock)
	if err != nil {
		return writeError(c, "Warehouses - LIST", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar descripción y dirección de la bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Warehouses - UPDATE", err)
	}
	var in dto.UpdateWarehouseRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, "Warehouses - UPDATE", err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bodega
// @Tags         warehouses
// @Security     Bearer
// @Param        id   path  int  true  "ID de la bodega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Warehouses - DELETE", err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, "Warehouses - DELETE", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
