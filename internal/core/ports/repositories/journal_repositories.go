package repositories

import (
	"context"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
)

// JournalRepository is the append-only journal boundary of the document
// store. There is deliberately no update or delete operation.
type JournalRepository interface {
	// AppendEntry persists a new entry. When the entry carries an
	// idempotency key and an entry with the same
	// (companyID, sourceEventType, sourceEventID) already exists, the store
	// must reject the write with apperrors.ErrDuplicate without persisting
	// anything. The check and the write are a single conditional operation;
	// callers must not rely on a prior read.
	AppendEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindBySourceEvent returns the entry posted for a business event, or
	// apperrors.ErrNotFound.
	FindBySourceEvent(ctx context.Context, companyID string, eventType domain.EventType, sourceEventID string) (*domain.JournalEntry, error)

	// ListEntriesByDateRange returns entries whose date falls in [from, to],
	// ordered by date ascending, at most limit.
	ListEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time, limit int) ([]domain.JournalEntry, error)

	// ListEntries returns the full history ordered by date ascending, at
	// most limit. Limit is mandatory: full-history reads are bounded by the
	// caller's safety cap.
	ListEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error)

	// ListRecentEntries returns the newest entries first, at most limit.
	ListRecentEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error)
}
