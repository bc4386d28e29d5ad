package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
)

var _ repository.VacationRepository = (*VacationRepo)(nil)

// VacationRepo implementación del puerto VacationRepository sobre PostgreSQL (usable con pool o tx).
type VacationRepo struct {
	q Querier
}

// NewVacationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVacationRepository(q Querier) *VacationRepo {
	return &VacationRepo{q: q}
}

const vacationColumns = `id, user_id, type, date_from, date_to, days_total, COALESCE(comment, ''), status, created_at`

// Create persiste una solicitud nueva (status pending).
func (r *VacationRepo) Create(ctx context.Context, v *entity.VacationRequest) error {
	query := `
		INSERT INTO vacations (id, user_id, type, date_from, date_to, days_total, comment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.UserID, v.Type, v.DateFrom, v.DateTo, v.DaysTotal, v.Comment, v.Status, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vacation: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por id. (nil, nil) si no existe.
func (r *VacationRepo) GetByID(ctx context.Context, id string) (*entity.VacationRequest, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations WHERE id = $1`
	var v entity.VacationRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.UserID, &v.Type, &v.DateFrom, &v.DateTo, &v.DaysTotal, &v.Comment, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vacation: %w", err)
	}
	return &v, nil
}

// UpdateContent actualiza los campos de contenido solo mientras la fila siga
// en pending. El guard va en el WHERE: si no afecta filas, la solicitud ya
// transicionó (o no existe) y se devuelve ErrNotPending.
func (r *VacationRepo) UpdateContent(ctx context.Context, v *entity.VacationRequest) error {
	query := `
		UPDATE vacations
		SET type = $2, date_from = $3, date_to = $4, days_total = $5, comment = NULLIF($6, '')
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(ctx, query, v.ID, v.Type, v.DateFrom, v.DateTo, v.DaysTotal, v.Comment)
	if err != nil {
		return fmt.Errorf("update vacation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotPending
	}
	return nil
}

// UpdateStatusIfPending transiciona pending -> approved|rejected de forma
// atómica. Dos aprobaciones concurrentes no se pisan: la segunda no afecta
// filas y recibe ErrNotPending.
func (r *VacationRepo) UpdateStatusIfPending(ctx context.Context, id, newStatus string) error {
	query := `UPDATE vacations SET status = $2 WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(ctx, query, id, newStatus)
	if err != nil {
		return fmt.Errorf("update vacation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotPending
	}
	return nil
}

// Delete elimina una solicitud en cualquier estado.
func (r *VacationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM vacations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vacation: %w", err)
	}
	return nil
}

// ListByUser lectura directa de las solicitudes de un usuario.
func (r *VacationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.VacationRequest, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByUserPrivileged misma lectura vía la función SECURITY DEFINER
// get_user_vacations(uuid), que ignora las reglas de visibilidad por fila.
func (r *VacationRepo) ListByUserPrivileged(ctx context.Context, userID string) ([]*entity.VacationRequest, error) {
	query := `SELECT ` + vacationColumns + ` FROM get_user_vacations($1) ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByStatus lista por estado (la bandeja de pendientes del admin).
func (r *VacationRepo) ListByStatus(ctx context.Context, status string) ([]*entity.VacationRequest, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

// ListAll lista todas las solicitudes (vista de administración).
func (r *VacationRepo) ListAll(ctx context.Context) ([]*entity.VacationRequest, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacations ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListApprovedBetween solicitudes aprobadas que tocan el rango [from, to].
func (r *VacationRepo) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]*entity.VacationRequest, error) {
	query := `
		SELECT ` + vacationColumns + ` FROM vacations
		WHERE status = 'approved' AND date_from <= $2 AND date_to >= $1
		ORDER BY date_from`
	return r.list(ctx, query, from, to)
}

func (r *VacationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.VacationRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}
	defer rows.Close()
	var list []*entity.VacationRequest
	for rows.Next() {
		var v entity.VacationRequest
		if err := rows.Scan(&v.ID, &v.UserID, &v.Type, &v.DateFrom, &v.DateTo, &v.DaysTotal, &v.Comment, &v.Status, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vacation: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
