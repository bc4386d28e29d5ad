// Package directory mapea una identidad a su perfil con rol. La lectura
// directa está sujeta a las reglas de visibilidad por fila del almacén, así
// que una fila existente puede venir suprimida; el procedimiento privilegiado
// es el segundo intento antes de rendirse.
package directory

import (
	"context"
	"time"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
)

// DirectoryUseCase casos de uso del directorio de perfiles.
type DirectoryUseCase struct {
	profiles repository.ProfileRepository
	log      *logger.Logger
}

// NewDirectoryUseCase construye el caso de uso.
func NewDirectoryUseCase(profiles repository.ProfileRepository, log *logger.Logger) *DirectoryUseCase {
	return &DirectoryUseCase{profiles: profiles, log: log}
}

// GetProfile busca el perfil de la identidad: primero la lectura directa,
// después el procedimiento privilegiado. "Sin filas" es not-found blando, no
// un error duro; el error solo se propaga si ninguno de los dos intentos
// devolvió datos.
func (uc *DirectoryUseCase) GetProfile(ctx context.Context, identity *entity.Identity) (*entity.Profile, error) {
	if identity == nil {
		return nil, nil
	}
	p, directErr := uc.profiles.GetByID(ctx, identity.ID)
	if p != nil {
		return p, nil
	}
	if directErr != nil {
		uc.log.Debug().Err(directErr).Str("user_id", identity.ID).Msg("lectura directa de perfil falló, intentando procedimiento privilegiado")
	}
	p, privErr := uc.profiles.GetPrivileged(ctx, identity.ID)
	if p != nil {
		return p, nil
	}
	if privErr != nil {
		return nil, privErr
	}
	// Ninguno devolvió datos: el error directo (si lo hubo) ya no aporta;
	// el perfil simplemente no existe todavía.
	return nil, directErr
}

// EnsureProfile devuelve el perfil, aprovisionándolo con rol employee si no
// existe. El INSERT puede ser bloqueado legítimamente (el trigger de registro
// pudo crear la fila en paralelo): el fallo se tolera y se re-lee en lugar de
// propagarse.
func (uc *DirectoryUseCase) EnsureProfile(ctx context.Context, identity *entity.Identity) (*entity.Profile, error) {
	p, err := uc.GetProfile(ctx, identity)
	if p != nil || identity == nil {
		return p, err
	}

	fresh := &entity.Profile{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      entity.RoleEmployee,
		CreatedAt: time.Now(),
	}
	if insErr := uc.profiles.Insert(ctx, fresh); insErr != nil {
		uc.log.Debug().Err(insErr).Str("user_id", identity.ID).Msg("aprovisionamiento de perfil bloqueado, re-leyendo")
		return uc.GetProfile(ctx, identity)
	}
	return fresh, nil
}
