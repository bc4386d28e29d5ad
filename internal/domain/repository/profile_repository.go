package repository

import (
	"context"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// ProfileRepository puerto de persistencia para perfiles.
//
// GetByID es la lectura directa, sujeta a las reglas de visibilidad por fila
// del almacén: devuelve (nil, nil) cuando no hay fila visible. GetPrivileged
// consulta el procedimiento con confianza elevada que ignora esas reglas;
// misma forma de salida.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetPrivileged(ctx context.Context, id string) (*entity.Profile, error)
	Insert(ctx context.Context, p *entity.Profile) error
	Upsert(ctx context.Context, p *entity.Profile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Profile, error)
}
