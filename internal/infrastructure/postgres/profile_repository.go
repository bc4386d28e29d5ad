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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL (usable con pool o tx).
//
// La tabla profiles está protegida con reglas de visibilidad por fila: la
// lectura directa puede suprimir una fila que existe. GetPrivileged consulta
// la función SECURITY DEFINER get_user_profile(uuid) como escape controlado.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, email, COALESCE(full_name, ''), role, COALESCE(position, ''), COALESCE(company, ''), created_at`

// GetByID lectura directa por id. (nil, nil) si no hay fila visible.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetPrivileged lectura vía la función con confianza elevada que ignora las
// reglas de visibilidad. Misma forma de salida que GetByID.
func (r *ProfileRepo) GetPrivileged(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM get_user_profile($1)`
	return r.scanOne(ctx, query, id)
}

func (r *ProfileRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Profile, error) {
	var p entity.Profile
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Role, &p.Position, &p.Company, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Insert persiste un perfil nuevo. Devuelve domain.ErrEmailAlreadyExists en
// conflicto de unicidad y deja pasar el 42501 envuelto para que el llamador
// distinga el bloqueo por visibilidad (ver directory.EnsureProfile).
func (r *ProfileRepo) Insert(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, full_name, role, position, company, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Email, p.FullName, p.Role, p.Position, p.Company, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Upsert crea o reemplaza el perfil (alta administrativa: el trigger de
// registro pudo haberse adelantado).
func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, full_name, role, position, company, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			position = EXCLUDED.position,
			company = EXCLUDED.company`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Email, p.FullName, p.Role, p.Position, p.Company, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Delete elimina un perfil por id.
func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// List devuelve todos los perfiles (vista de administración).
func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.Position, &p.Company, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
