package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleComercial = "comercial"
	RoleUser      = "user"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un miembro del departamento con acceso a SiPP.
type User struct {
	ID           string
	FullName     string
	Email        string
	AreaType     string // ej. "departamento", "grupo de investigación"
	Area         string
	Role         string // admin, comercial, user
	PasswordHash string // bcrypt
	Avatar       string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff indica si el rol puede gestionar pedidos de otros usuarios.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleComercial
}

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleComercial, RoleUser:
		return true
	}
	return false
}
