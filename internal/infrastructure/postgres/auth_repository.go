package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)
var _ repository.SessionRepository = (*SessionRepo)(nil)

// CredentialRepo implementación del puerto CredentialRepository sobre PostgreSQL.
type CredentialRepo struct {
	q Querier
}

// NewCredentialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCredentialRepository(q Querier) *CredentialRepo {
	return &CredentialRepo{q: q}
}

// GetByEmail obtiene la credencial por email. (nil, nil) si no existe.
func (r *CredentialRepo) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	query := `SELECT user_id, email, password_hash, created_at FROM credentials WHERE email = $1`
	return r.scanOne(ctx, query, email)
}

// GetByUserID obtiene la credencial por id de usuario. (nil, nil) si no existe.
func (r *CredentialRepo) GetByUserID(ctx context.Context, userID string) (*entity.Credential, error) {
	query := `SELECT user_id, email, password_hash, created_at FROM credentials WHERE user_id = $1`
	return r.scanOne(ctx, query, userID)
}

func (r *CredentialRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Credential, error) {
	var c entity.Credential
	err := r.q.QueryRow(ctx, query, args...).Scan(&c.UserID, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &c, nil
}

// Create persiste una credencial nueva.
func (r *CredentialRepo) Create(ctx context.Context, c *entity.Credential) error {
	query := `INSERT INTO credentials (user_id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, c.UserID, c.Email, c.PasswordHash, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// Delete elimina la credencial de un usuario.
func (r *CredentialRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM credentials WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
// Cada fila es un refresh token vigente; el refresh rota la fila.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste una sesión de refresh.
func (r *SessionRepo) Create(ctx context.Context, s *entity.AuthSession) error {
	query := `INSERT INTO auth_sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, s.Token, s.UserID, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByToken obtiene una sesión por su refresh token. (nil, nil) si no existe.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*entity.AuthSession, error) {
	query := `SELECT token, user_id, expires_at, created_at FROM auth_sessions WHERE token = $1`
	var s entity.AuthSession
	err := r.q.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Delete revoca una sesión por token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM auth_sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser revoca todas las sesiones de un usuario (baja administrativa).
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM auth_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete sessions by user: %w", err)
	}
	return nil
}
