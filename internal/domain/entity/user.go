package entity

import "time"

// Roles base.
const (
	RoleAdmin     = "ADMIN"
	RoleSeller    = "SELLER"
	RoleWarehouse = "WAREHOUSE"
)

// Role rol de acceso.
type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User usuario del sistema.
type User struct {
	ID           int64
	Name         string
	Lastname     string
	Email        string
	PasswordHash string // bcrypt, nunca texto plano
	RoleID       int64
	RoleName     string // join con roles (lectura)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
