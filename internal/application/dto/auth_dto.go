package dto

// LoginRequest entrada para login (email + password).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida del login. El par de tokens viaja en la cookie de
// sesión, no en el cuerpo.
type LoginResponse struct {
	User ProfileResponse `json:"user"`
}

// MeResponse identidad resuelta + perfil para la vista.
type MeResponse struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Role    string          `json:"role"`
	Profile ProfileResponse `json:"profile"`
}
