package entity

import "time"

// Roles de la aplicación. El rol del perfil es la única señal de autorización.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// Identity es el sujeto autenticado que devuelve el almacén de credenciales
// para una sesión. Inmutable durante la vida de la sesión.
type Identity struct {
	ID    string
	Email string
	// Role es solo una pista transportada en el token; las decisiones de
	// autorización releen el rol desde el perfil.
	Role string
}

// Profile es el registro de usuario a nivel de aplicación, 1:1 con Identity.
// Se crea perezosamente: por trigger en el registro, o defensivamente por la
// aplicación en el primer acceso autenticado si falta.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	Position  string    `json:"position,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin indica si el perfil tiene rol de administrador.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
