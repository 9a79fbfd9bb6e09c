package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
)

type stockService interface {
	List(ctx context.Context, warehouseID, productID int64) ([]dto.StockResponse, error)
}

// StockHandler consulta de existencias.
type StockHandler struct {
	uc stockService
}

func NewStockHandler(uc stockService) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Existencias por bodega, por producto o del par producto+bodega
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  query  int  false  "ID de bodega"
// @Param        productId    query  int  false  "ID de producto"
// @Success      200  {array}   dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	warehouseID := int64(c.QueryInt("warehouseId", 0))
	productID := int64(c.QueryInt("productId", 0))
	out, err := h.uc.List(c.UserContext(), warehouseID, productID)
	if err != nil {
		return writeError(c, "Stocks - LIST", err)
	}
	return c.JSON(out)
}
