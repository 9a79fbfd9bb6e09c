package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

// UserRepo adaptador de persistencia de usuarios.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.id, u.name, u.lastname, u.email, u.password_hash, u.role_id, r.name, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Lastname, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create persiste un usuario. Email repetido: ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (name, lastname, email, password_hash, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, u.Name, u.Lastname, u.Email, u.PasswordHash, u.RoleID,
		u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return wrapWriteErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (con nombre de rol).
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE u.id = $1`, id)
}

// GetByEmail obtiene un usuario por email (login).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE u.email = $1`, email)
}

// Update actualiza datos y rol (no el password).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET name = $2, lastname = $3, email = $4, role_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Lastname, u.Email, u.RoleID, u.UpdatedAt)
	return userNotFound(expectAffected(tag, err, "update user"))
}

// UpdatePassword reemplaza el hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	return userNotFound(expectAffected(tag, err, "update user password"))
}

// List lista usuarios por apellido y nombre.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, userSelect+` ORDER BY u.lastname, u.name, u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario. Con transferencias registradas la FK lo impide.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return userNotFound(expectAffected(tag, err, "delete user"))
}

func userNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

// RoleRepo adaptador de roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByName obtiene un rol por nombre (los roles base se siembran en Migrate).
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List todos los roles.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Role, error) {
		var role entity.Role
		err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
		return &role, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect roles: %w", err)
	}
	return roles, nil
}
