package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isRLSDenied verifica si un error viene de las reglas de visibilidad por fila
// (42501 insufficient_privilege). Un INSERT directo puede ser bloqueado
// legítimamente cuando un trigger concurrente ya creó la fila; el llamador
// debe tolerar y re-leer.
func isRLSDenied(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42501" // insufficient_privilege
	}
	return strings.Contains(err.Error(), "42501")
}
