package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/vacaciones-api/internal/application/users"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
)

var _ users.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunUserTx inicia una transacción con los repos de credenciales, sesiones y
// perfiles atados a ella (alta/baja administrativa de usuarios) y hace
// Commit o Rollback.
func (r *TxRunner) RunUserTx(ctx context.Context, fn func(
	credRepo repository.CredentialRepository,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	credRepo := NewCredentialRepository(tx)
	sessionRepo := NewSessionRepository(tx)
	profileRepo := NewProfileRepository(tx)

	if err := fn(credRepo, sessionRepo, profileRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
