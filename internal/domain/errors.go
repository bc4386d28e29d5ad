package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía: ErrUnauthorized = sin identidad resoluble; ErrForbidden = identidad
// sin el rol requerido; ErrNotFound / ErrProfileNotFound = ausencia de fila
// (incluye filas suprimidas por reglas de visibilidad, se resuelve con fallback
// y no se muestra al usuario); ErrInvalid* = validación, no se intenta persistir;
// cualquier otro error del almacén aborta la operación.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrProfileNotFound  = errors.New("perfil no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidDateRange = errors.New("la fecha final es anterior a la inicial")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrNotPending       = errors.New("la solicitud ya no está pendiente")
	ErrSessionExpired   = errors.New("sesión expirada")
)
