package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles}
}

// Create hashea el password con bcrypt y persiste. Email repetido: ErrEmailAlreadyExists.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name y email son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: el password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.resolveRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Name:         in.Name,
		Lastname:     in.Lastname,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Update actualiza datos y rol. El password se cambia con ChangePassword.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Lastname != nil {
		user.Lastname = *in.Lastname
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Role != nil {
		role, err := uc.resolveRole(ctx, *in.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID, user.RoleName = role.ID, role.Name
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// ChangePassword reemplaza el hash del password.
func (uc *UserUseCase) ChangePassword(ctx context.Context, id int64, in dto.ChangePasswordRequest) error {
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: el password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, string(hash))
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ListRoles devuelve los nombres de rol disponibles.
func (uc *UserUseCase) ListRoles(ctx context.Context) ([]string, error) {
	roles, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names, nil
}

func (uc *UserUseCase) resolveRole(ctx context.Context, name string) (*entity.Role, error) {
	role, err := uc.roles.GetByName(ctx, strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, name)
	}
	return role, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Role:      u.RoleName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
