package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Ensure TxRunner implements versioning.TxRunner.
var _ versioning.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del registro de versiones
// atados a la tx y hace Commit o Rollback. Retirar la versión anterior y activar la
// nueva comparten transacción: nunca queda un tipo de negocio sin versión publicada
// por un crash a mitad del publish.
func (r *TxRunner) Run(ctx context.Context, fn func(
	versionRepo repository.VersionRepository,
	btRepo repository.BusinessTypeRepository,
	tenantRepo repository.TenantRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	versionRepo := NewVersionRepository(tx)
	btRepo := NewBusinessTypeRepository(tx)
	tenantRepo := NewTenantRepository(tx)
	historyRepo := NewHistoryRepository(tx)

	if err := fn(versionRepo, btRepo, tenantRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
