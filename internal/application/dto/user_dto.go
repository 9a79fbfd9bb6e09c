package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Lastname string `json:"lastname" validate:"max=100"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,max=50"`
}

// UpdateUserRequest entrada para actualizar datos del usuario (sin password).
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Lastname *string `json:"lastname" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=150"`
	Role     *string `json:"role" validate:"omitempty,max=50"`
}

// ChangePasswordRequest entrada para cambiar la contraseña.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary resumen de usuario embebido en otras respuestas.
type UserSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
