package dto

import (
	"time"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// CreateUserRequest entrada del endpoint privilegiado de alta de usuarios
// (password en texto, se hashea en el use case; vacío = password temporal).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
	Position string `json:"position" validate:"omitempty,max=200"`
	Company  string `json:"company" validate:"omitempty,max=200"`
}

// ProfileResponse salida de un perfil (sin credenciales).
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	Position  string    `json:"position,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserResponse salida del alta administrativa.
type CreateUserResponse struct {
	Success bool            `json:"success"`
	User    ProfileResponse `json:"user"`
}

// ToProfileResponse convierte la entidad a su DTO de salida.
func ToProfileResponse(p *entity.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		Position:  p.Position,
		Company:   p.Company,
		CreatedAt: p.CreatedAt,
	}
}
