package dto

import "time"

// RegisterRequest auto-registro (rol user).
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	AreaType string `json:"area_type" validate:"omitempty,max=100"`
	Area     string `json:"area" validate:"omitempty,max=200"`
}

// CreateUserRequest alta de usuario por un administrador (cualquier rol).
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	AreaType string `json:"area_type" validate:"omitempty,max=100"`
	Area     string `json:"area" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin comercial user"`
}

// AdminUpdateUserRequest edición de un usuario por un administrador.
type AdminUpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	AreaType *string `json:"area_type" validate:"omitempty,max=100"`
	Area     *string `json:"area" validate:"omitempty,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin comercial user"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateProfileRequest edición del propio perfil. Cambiar password exige CurrentPassword.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	AreaType        *string `json:"area_type" validate:"omitempty,max=100"`
	Area            *string `json:"area" validate:"omitempty,max=200"`
	Avatar          *string `json:"avatar" validate:"omitempty,max=500"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password" validate:"omitempty,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	AreaType  string    `json:"area_type"`
	Area      string    `json:"area"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
