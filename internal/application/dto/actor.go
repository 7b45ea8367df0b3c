package dto

// Actor identidad del usuario autenticado que ejecuta un caso de uso (sale del JWT).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin informa si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == "admin" }

// IsStaff informa si el actor gestiona pedidos de terceros (admin o comercial).
func (a Actor) IsStaff() bool { return a.Role == "admin" || a.Role == "comercial" }
