package repository

import (
	"context"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// CredentialRepository puerto de persistencia para credenciales de login.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Credential, error)
	Create(ctx context.Context, c *entity.Credential) error
	Delete(ctx context.Context, userID string) error
}

// SessionRepository puerto de persistencia para sesiones de refresh.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.AuthSession) error
	GetByToken(ctx context.Context, token string) (*entity.AuthSession, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
