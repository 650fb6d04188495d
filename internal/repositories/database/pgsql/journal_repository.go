package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxJournalRepository persists journal entries in the journal_entries
// table, with lines as a JSONB document. The idempotency key is enforced by
// a partial unique index on (company_id, source_event_type, source_event_id)
// restricted to rows where source_event_id is non-empty.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const journalColumns = `
	entry_id, company_id, entry_date, source_event_type, source_event_id,
	reference, counterparty, description, lines, total_amount,
	is_balanced, is_manual, created_at, created_by`

// AppendEntry implements portsrepo.JournalRepository. The conditional insert
// makes the duplicate check and the write one atomic statement: a concurrent
// posting of the same business event leaves exactly one row.
func (r *PgxJournalRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	linesJSON, err := json.Marshal(entry.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode journal lines: %w", err)
	}

	query := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (company_id, source_event_type, source_event_id)
			WHERE source_event_id <> ''
			DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.CompanyID,
		entry.Date,
		string(entry.SourceEventType),
		entry.SourceEventID,
		entry.Reference,
		entry.Counterparty,
		entry.Description,
		linesJSON,
		entry.TotalAmount,
		entry.IsBalanced,
		entry.IsManual,
		entry.CreatedAt,
		entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert journal entry: %v", apperrors.ErrStoreUnavailable, err)
	}
	if entry.HasIdempotencyKey() && tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry for event %s/%s already recorded",
			apperrors.ErrDuplicate, entry.SourceEventType, entry.SourceEventID)
	}
	return nil
}

func scanEntry(row pgx.CollectableRow) (domain.JournalEntry, error) {
	var (
		entry     domain.JournalEntry
		eventType string
		linesJSON []byte
	)
	err := row.Scan(
		&entry.EntryID,
		&entry.CompanyID,
		&entry.Date,
		&eventType,
		&entry.SourceEventID,
		&entry.Reference,
		&entry.Counterparty,
		&entry.Description,
		&linesJSON,
		&entry.TotalAmount,
		&entry.IsBalanced,
		&entry.IsManual,
		&entry.CreatedAt,
		&entry.CreatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	entry.SourceEventType = domain.EventType(eventType)
	if err := json.Unmarshal(linesJSON, &entry.Lines); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to decode journal lines for entry %s: %w", entry.EntryID, err)
	}
	return entry, nil
}

func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query journal entries: %v", apperrors.ErrStoreUnavailable, err)
	}
	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan journal entries: %v", apperrors.ErrStoreUnavailable, err)
	}
	return entries, nil
}

// FindBySourceEvent implements portsrepo.JournalRepository.
func (r *PgxJournalRepository) FindBySourceEvent(ctx context.Context, companyID string, eventType domain.EventType, sourceEventID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND source_event_type = $2 AND source_event_id = $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, string(eventType), sourceEventID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query journal entry: %v", apperrors.ErrStoreUnavailable, err)
	}
	entry, err := pgx.CollectOneRow(rows, scanEntry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no entry for event %s/%s", apperrors.ErrNotFound, eventType, sourceEventID)
		}
		return nil, fmt.Errorf("%w: failed to scan journal entry: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &entry, nil
}

// ListEntriesByDateRange implements portsrepo.JournalRepository.
func (r *PgxJournalRepository) ListEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date ASC
		LIMIT $4;
	`
	return r.queryEntries(ctx, query, companyID, from, to, limit)
}

// ListEntries implements portsrepo.JournalRepository.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE company_id = $1
		ORDER BY entry_date ASC
		LIMIT $2;
	`
	return r.queryEntries(ctx, query, companyID, limit)
}

// ListRecentEntries implements portsrepo.JournalRepository.
func (r *PgxJournalRepository) ListRecentEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE company_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2;
	`
	return r.queryEntries(ctx, query, companyID, limit)
}
