package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vacaciones-api/internal/application/directory"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
)

// fakeProfileRepo simula el almacén: la lectura directa y la privilegiada se
// controlan por separado para reproducir la supresión por visibilidad de fila.
type fakeProfileRepo struct {
	direct     *entity.Profile
	directErr  error
	priv       *entity.Profile
	privErr    error
	insertErr  error
	inserted   *entity.Profile
	afterIns   *entity.Profile // lo que la lectura directa devuelve tras el insert fallido
	insertDone bool

	directCalls int
	privCalls   int
}

func (f *fakeProfileRepo) GetByID(context.Context, string) (*entity.Profile, error) {
	f.directCalls++
	if f.insertDone && f.afterIns != nil {
		return f.afterIns, nil
	}
	return f.direct, f.directErr
}

func (f *fakeProfileRepo) GetPrivileged(context.Context, string) (*entity.Profile, error) {
	f.privCalls++
	return f.priv, f.privErr
}

func (f *fakeProfileRepo) Insert(_ context.Context, p *entity.Profile) error {
	f.insertDone = true
	f.inserted = p
	return f.insertErr
}

func (f *fakeProfileRepo) Upsert(context.Context, *entity.Profile) error   { return nil }
func (f *fakeProfileRepo) Delete(context.Context, string) error            { return nil }
func (f *fakeProfileRepo) List(context.Context) ([]*entity.Profile, error) { return nil, nil }

var ident = &entity.Identity{ID: "u-1", Email: "empleado@empresa.com", Role: "employee"}

func adminProfile() *entity.Profile {
	return &entity.Profile{ID: "u-1", Email: "empleado@empresa.com", Role: entity.RoleAdmin}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetProfile — directo primero, privilegiado como segundo intento
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProfile_LecturaDirectaResuelve(t *testing.T) {
	repo := &fakeProfileRepo{direct: adminProfile()}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.GetProfile(context.Background(), ident)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleAdmin, p.Role)
	assert.Zero(t, repo.privCalls, "con lectura directa exitosa no se toca el procedimiento privilegiado")
}

func TestGetProfile_FilaSuprimida_CaeAlPrivilegiado(t *testing.T) {
	// La fila existe pero la lectura directa viene vacía (visibilidad por fila).
	repo := &fakeProfileRepo{direct: nil, priv: adminProfile()}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.GetProfile(context.Background(), ident)

	require.NoError(t, err)
	require.NotNil(t, p, "si el procedimiento privilegiado tiene la fila, el resultado nunca es vacío")
	assert.Equal(t, entity.RoleAdmin, p.Role)
	assert.Equal(t, 1, repo.privCalls)
}

func TestGetProfile_ErrorDirecto_CaeAlPrivilegiado(t *testing.T) {
	repo := &fakeProfileRepo{directErr: errors.New("permission denied"), priv: adminProfile()}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.GetProfile(context.Background(), ident)

	require.NoError(t, err, "el error directo no se propaga si el privilegiado resolvió")
	require.NotNil(t, p)
}

func TestGetProfile_NingunoTieneLaFila(t *testing.T) {
	repo := &fakeProfileRepo{}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.GetProfile(context.Background(), ident)

	assert.Nil(t, p)
	assert.NoError(t, err, "sin filas es not-found blando, no un error duro")
}

func TestGetProfile_ErrorPrivilegiadoSinDatos_SePropaga(t *testing.T) {
	repo := &fakeProfileRepo{privErr: errors.New("conexión caída")}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.GetProfile(context.Background(), ident)

	assert.Nil(t, p)
	assert.Error(t, err)
}

func TestGetProfile_IdentidadNil(t *testing.T) {
	repo := &fakeProfileRepo{}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.GetProfile(context.Background(), nil)

	assert.Nil(t, p)
	assert.NoError(t, err)
	assert.Zero(t, repo.directCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureProfile — aprovisionamiento con rol employee por defecto
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureProfile_AprovisionaConRolEmployee(t *testing.T) {
	repo := &fakeProfileRepo{}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.EnsureProfile(context.Background(), ident)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleEmployee, p.Role, "el perfil aprovisionado nace con rol employee")
	assert.Equal(t, ident.ID, p.ID)
	assert.Equal(t, ident.Email, p.Email)
	require.NotNil(t, repo.inserted)
}

func TestEnsureProfile_InsertBloqueado_ReLeeEnVezDePropagarse(t *testing.T) {
	// El trigger de registro creó la fila en paralelo: el INSERT rebota pero la
	// re-lectura ya la encuentra.
	existing := &entity.Profile{ID: "u-1", Role: entity.RoleEmployee}
	repo := &fakeProfileRepo{insertErr: errors.New("row-level security"), afterIns: existing}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.EnsureProfile(context.Background(), ident)

	require.NoError(t, err, "un INSERT bloqueado se tolera, no se propaga")
	require.NotNil(t, p)
	assert.Equal(t, existing, p)
}

func TestEnsureProfile_PerfilYaExiste_NoInserta(t *testing.T) {
	repo := &fakeProfileRepo{direct: adminProfile()}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.EnsureProfile(context.Background(), ident)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, p.Role)
	assert.Nil(t, repo.inserted, "con perfil existente no hay aprovisionamiento")
}

func TestEnsureProfile_IdentidadNil(t *testing.T) {
	repo := &fakeProfileRepo{}
	uc := directory.NewDirectoryUseCase(repo, logger.Nop())

	p, err := uc.EnsureProfile(context.Background(), nil)

	assert.Nil(t, p)
	assert.NoError(t, err)
	assert.Nil(t, repo.inserted)
}
