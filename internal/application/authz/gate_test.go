package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vacaciones-api/internal/application/authz"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// La tabla del gate se evalúa en orden: identidad, perfil, rol válido, rol
// permitido. Cada caso cubre una fila.
func TestAuthorize_TablaDeReglas(t *testing.T) {
	ident := &entity.Identity{ID: "u-1", Email: "e@empresa.com", Role: entity.RoleAdmin}
	adminProfile := &entity.Profile{ID: "u-1", Role: entity.RoleAdmin}
	employeeProfile := &entity.Profile{ID: "u-1", Role: entity.RoleEmployee}
	brokenProfile := &entity.Profile{ID: "u-1", Role: "superuser"}

	casos := []struct {
		nombre   string
		identity *entity.Identity
		profile  *entity.Profile
		allowed  []string
		want     authz.Decision
	}{
		{
			nombre:  "sin identidad -> login",
			allowed: []string{entity.RoleEmployee},
			want:    authz.RedirectTo(authz.LoginPath),
		},
		{
			nombre:   "admin en ruta admin -> permitido con rol ligado",
			identity: ident,
			profile:  adminProfile,
			allowed:  []string{entity.RoleAdmin},
			want:     authz.Allow(entity.RoleAdmin),
		},
		{
			nombre:   "employee en ruta admin -> raíz",
			identity: ident,
			profile:  employeeProfile,
			allowed:  []string{entity.RoleAdmin},
			want:     authz.RedirectTo(authz.HomePath),
		},
		{
			nombre:   "employee en ruta multi-rol -> permitido",
			identity: ident,
			profile:  employeeProfile,
			allowed:  []string{entity.RoleEmployee, entity.RoleAdmin},
			want:     authz.Allow(entity.RoleEmployee),
		},
		{
			nombre:   "sin perfil -> employee por defecto, pasa rutas employee",
			identity: ident,
			profile:  nil,
			allowed:  []string{entity.RoleEmployee, entity.RoleAdmin},
			want:     authz.Allow(entity.RoleEmployee),
		},
		{
			nombre:   "sin perfil -> employee por defecto, bloqueado en ruta admin",
			identity: ident,
			profile:  nil,
			allowed:  []string{entity.RoleAdmin},
			want:     authz.RedirectTo(authz.HomePath),
		},
		{
			nombre:   "rol desconocido -> raíz aunque estuviera en la lista",
			identity: ident,
			profile:  brokenProfile,
			allowed:  []string{"superuser"},
			want:     authz.RedirectTo(authz.HomePath),
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := authz.Authorize(c.identity, c.profile, c.allowed...)
			assert.Equal(t, c.want, got)
		})
	}
}

// El rol que transporta la identidad (pista del token) no participa en la
// decisión: solo cuenta el perfil releído.
func TestAuthorize_IgnoraElRolDelToken(t *testing.T) {
	ident := &entity.Identity{ID: "u-1", Role: entity.RoleAdmin} // pista mentirosa
	employeeProfile := &entity.Profile{ID: "u-1", Role: entity.RoleEmployee}

	got := authz.Authorize(ident, employeeProfile, entity.RoleAdmin)

	assert.False(t, got.Allowed, "el rol admin del token no debe abrir rutas admin")
	assert.Equal(t, authz.HomePath, got.Redirect)
}
