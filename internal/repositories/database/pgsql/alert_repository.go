package pgsql

import (
	"context"
	"fmt"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAlertRepository stores financial alerts as immutable month-tagged audit
// rows. There is no update or delete path.
type PgxAlertRepository struct {
	BaseRepository
}

func newPgxAlertRepository(pool *pgxpool.Pool) portsrepo.AlertRepository {
	return &PgxAlertRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AlertRepository = (*PgxAlertRepository)(nil)

// SaveAlertBatch implements portsrepo.AlertRepository. The batch is written
// atomically; a partial alert record would misstate the month's evaluation.
func (r *PgxAlertRepository) SaveAlertBatch(ctx context.Context, companyID string, month string, alerts []domain.FinancialAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO financial_alerts (alert_id, company_id, month, severity, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, a := range alerts {
		batch.Queue(query, uuid.NewString(), companyID, month, string(a.Severity), a.Message, a.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("%w: failed to insert alert batch: %v", apperrors.ErrStoreUnavailable, err)
	}

	return r.Commit(ctx, tx)
}

// ListAlertsByMonth implements portsrepo.AlertRepository.
func (r *PgxAlertRepository) ListAlertsByMonth(ctx context.Context, companyID string, month string) ([]domain.FinancialAlert, error) {
	query := `
		SELECT severity, message, month, created_at
		FROM financial_alerts
		WHERE company_id = $1 AND month = $2
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, month)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query alerts: %v", apperrors.ErrStoreUnavailable, err)
	}
	alerts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialAlert, error) {
		var (
			alert    domain.FinancialAlert
			severity string
		)
		err := row.Scan(&severity, &alert.Message, &alert.Month, &alert.CreatedAt)
		alert.Severity = domain.AlertSeverity(severity)
		return alert, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan alerts: %v", apperrors.ErrStoreUnavailable, err)
	}
	return alerts, nil
}
