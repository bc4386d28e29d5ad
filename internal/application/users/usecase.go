// Package users implementa la gestión administrativa de usuarios: alta de
// credencial + perfil en una transacción, y baja con limpieza de sesiones.
// La autorización (solo admin) la re-deriva el handler en el servidor; aquí
// se asume actor ya autorizado.
package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// Password temporal para altas sin password explícito; el usuario debe
// cambiarla en su primer acceso.
const tempPassword = "TempPassword123!"

// TxRunner ejecuta el callback con repos atados a una transacción.
type TxRunner interface {
	RunUserTx(ctx context.Context, fn func(
		credRepo repository.CredentialRepository,
		sessionRepo repository.SessionRepository,
		profileRepo repository.ProfileRepository,
	) error) error
}

// UsersUseCase casos de uso de gestión de usuarios.
type UsersUseCase struct {
	tx       TxRunner
	profiles repository.ProfileRepository
}

// NewUsersUseCase construye el caso de uso.
func NewUsersUseCase(tx TxRunner, profiles repository.ProfileRepository) *UsersUseCase {
	return &UsersUseCase{tx: tx, profiles: profiles}
}

// CreateUser crea credencial y perfil de forma atómica. El perfil se upserta:
// un trigger de registro pudo haberse adelantado con la fila.
func (uc *UsersUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*entity.Profile, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	password := in.Password
	if password == "" {
		password = tempPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &entity.Profile{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  in.FullName,
		Role:      in.Role,
		Position:  in.Position,
		Company:   in.Company,
		CreatedAt: now,
	}
	err = uc.tx.RunUserTx(ctx, func(
		credRepo repository.CredentialRepository,
		_ repository.SessionRepository,
		profileRepo repository.ProfileRepository,
	) error {
		cred := &entity.Credential{
			UserID:       profile.ID,
			Email:        email,
			PasswordHash: string(hash),
			CreatedAt:    now,
		}
		if err := credRepo.Create(ctx, cred); err != nil {
			return err
		}
		return profileRepo.Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteUser elimina credencial, sesiones y perfil de forma atómica.
func (uc *UsersUseCase) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.RunUserTx(ctx, func(
		credRepo repository.CredentialRepository,
		sessionRepo repository.SessionRepository,
		profileRepo repository.ProfileRepository,
	) error {
		if err := sessionRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := credRepo.Delete(ctx, userID); err != nil {
			return err
		}
		return profileRepo.Delete(ctx, userID)
	})
}

// ListUsers lista todos los perfiles (tabla de usuarios del admin).
func (uc *UsersUseCase) ListUsers(ctx context.Context) ([]*entity.Profile, error) {
	return uc.profiles.List(ctx)
}
