// Package authz decide, con la identidad y el perfil ya resueltos en el
// servidor, si una ruta es accesible. Cualquier rol que venga del cliente es
// solo una pista: aquí no se lee.
package authz

import "github.com/jhoicas/vacaciones-api/internal/domain/entity"

// Rutas de redirección del gate.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision es el resultado del gate: permitir (con el rol efectivo ligado a
// la vista) o redirigir.
type Decision struct {
	Allowed  bool
	Redirect string
	// Role es el rol efectivo resuelto, solo válido cuando Allowed.
	Role string
}

// Allow construye una decisión permisiva con el rol efectivo.
func Allow(role string) Decision {
	return Decision{Allowed: true, Role: role}
}

// RedirectTo construye una decisión de redirección.
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Authorize evalúa la tabla de reglas en orden:
//  1. sin identidad -> login;
//  2. sin perfil (tras el intento de aprovisionamiento) -> rol employee por
//     defecto (deniega acceso elevado, no expulsa);
//  3. rol desconocido -> raíz;
//  4. rol fuera del conjunto permitido -> raíz;
//  5. permitir, ligando el rol resuelto.
func Authorize(identity *entity.Identity, profile *entity.Profile, allowed ...string) Decision {
	if identity == nil {
		return RedirectTo(LoginPath)
	}
	role := entity.RoleEmployee
	if profile != nil {
		role = profile.Role
	}
	if !entity.ValidRole(role) {
		return RedirectTo(HomePath)
	}
	for _, a := range allowed {
		if role == a {
			return Allow(role)
		}
	}
	return RedirectTo(HomePath)
}
