package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
)

type userService interface {
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, id int64, in dto.ChangePasswordRequest) error
	Delete(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]string, error)
}

// UserHandler administración de usuarios (solo ADMIN).
type UserHandler struct {
	uc userService
}

func NewUserHandler(uc userService) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "Users - CREATE", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, "Users - LIST", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Users - GET", err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, "Users - GET", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Users - UPDATE", err)
	}
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, "Users - UPDATE", err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.ChangePasswordRequest  true  "password nuevo"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Users - PASSWORD", err)
	}
	var in dto.ChangePasswordRequest
	if err := bindJSON(c, &in); err != nil {
		return badBody(c, err)
	}
	if err := h.uc.ChangePassword(c.UserContext(), id, in); err != nil {
		return writeError(c, "Users - PASSWORD", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        id   path  int  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, "Users - DELETE", err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, "Users - DELETE", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Roles godoc
// @Summary      Listar roles
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/roles [get]
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles(c.UserContext())
	if err != nil {
		return writeError(c, "Roles - LIST", err)
	}
	return c.JSON(out)
}
