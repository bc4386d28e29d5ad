// Package auth implementa el almacén de credenciales: autentica email/password
// y emite/renueva el par de tokens de sesión (access firmado + refresh opaco
// persistido en auth_sessions).
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
	"github.com/jhoicas/vacaciones-api/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	AccessMinutes int
	RefreshDays   int
	Issuer        string
}

// AuthUseCase casos de uso del almacén de credenciales.
type AuthUseCase struct {
	credRepo    repository.CredentialRepository
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(credRepo repository.CredentialRepository, sessionRepo repository.SessionRepository, profileRepo repository.ProfileRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{credRepo: credRepo, sessionRepo: sessionRepo, profileRepo: profileRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite un par de tokens nuevo.
// Credencial inexistente y password incorrecto devuelven el mismo
// ErrUnauthorized para no filtrar qué emails existen.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.TokenPair, *entity.Identity, error) {
	cred, err := uc.credRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if cred == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	return uc.issuePair(ctx, cred)
}

// Refresh rota la sesión: valida el refresh token vigente, lo invalida y
// emite un par nuevo. Token desconocido o vencido -> ErrSessionExpired.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, *entity.Identity, error) {
	sess, err := uc.validSession(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	cred, err := uc.credRepo.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, nil, err
	}
	if cred == nil {
		return nil, nil, domain.ErrSessionExpired
	}
	// Un solo uso: la fila vieja desaparece antes de emitir la nueva.
	if err := uc.sessionRepo.Delete(ctx, refreshToken); err != nil {
		return nil, nil, err
	}
	return uc.issuePair(ctx, cred)
}

// VerifyAccess valida firma y expiración del access token y devuelve la
// identidad que transporta. No toca el almacén.
func (uc *AuthUseCase) VerifyAccess(tokenString string) (*entity.Identity, error) {
	claims, err := token.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// IdentityFromRefresh recupera la identidad verificada desde el estado de
// sesión ambiente (la fila de refresh) sin rotar el par.
func (uc *AuthUseCase) IdentityFromRefresh(ctx context.Context, refreshToken string) (*entity.Identity, error) {
	sess, err := uc.validSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	cred, err := uc.credRepo.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrSessionExpired
	}
	return &entity.Identity{ID: cred.UserID, Email: cred.Email, Role: uc.roleHint(ctx, cred.UserID)}, nil
}

// Logout revoca la sesión de refresh. Token desconocido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, refreshToken)
}

func (uc *AuthUseCase) validSession(ctx context.Context, refreshToken string) (*entity.AuthSession, error) {
	if refreshToken == "" {
		return nil, domain.ErrSessionExpired
	}
	sess, err := uc.sessionRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrSessionExpired
	}
	if sess.Expired(time.Now()) {
		_ = uc.sessionRepo.Delete(ctx, refreshToken)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

func (uc *AuthUseCase) issuePair(ctx context.Context, cred *entity.Credential) (*entity.TokenPair, *entity.Identity, error) {
	role := uc.roleHint(ctx, cred.UserID)
	access, err := token.Generate(uc.jwtCfg.Secret, cred.UserID, cred.Email, role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessMinutes)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	sess := &entity.AuthSession{
		Token:     uuid.NewString(),
		UserID:    cred.UserID,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.RefreshDays) * 24 * time.Hour),
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Create(ctx, sess); err != nil {
		return nil, nil, err
	}
	pair := &entity.TokenPair{AccessToken: access, RefreshToken: sess.Token}
	ident := &entity.Identity{ID: cred.UserID, Email: cred.Email, Role: role}
	return pair, ident, nil
}

// roleHint lee el rol del perfil para transportarlo en el token. Es solo una
// pista para la UI: si el perfil aún no existe (trigger pendiente) se asume
// employee y el directorio resolverá el rol real en cada request.
func (uc *AuthUseCase) roleHint(ctx context.Context, userID string) string {
	p, err := uc.profileRepo.GetPrivileged(ctx, userID)
	if err != nil || p == nil {
		return entity.RoleEmployee
	}
	return p.Role
}
