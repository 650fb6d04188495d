package services

import (
	"context"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/gestium-IO/gestium-enterprise/internal/dto"
)

// JournalSvcFacade is the journal engine: the single place the double-entry
// invariant and the duplicate-prevention rule are enforced.
type JournalSvcFacade interface {
	// PostAutomaticEntry derives an entry from a business event using the
	// fixed per-event-type template. Posting the same (eventType, eventData.ID)
	// twice yields exactly one persisted entry; the second call returns
	// Duplicate=true with no error. Failures are reported to the diagnostics
	// sink and re-raised so the triggering workflow knows the posting did
	// not commit.
	PostAutomaticEntry(ctx context.Context, companyID string, eventType domain.EventType, data domain.EventData) (dto.PostingResult, error)

	// PostManualEntry validates and persists a hand-written entry. The
	// caller must hold the manual-entries capability; an unbalanced draft is
	// returned as a rejection carrying both totals, with nothing persisted.
	PostManualEntry(ctx context.Context, companyID string, req dto.CreateManualEntryRequest, userID string, canPostManual bool) (dto.ManualEntryResult, error)

	// ListRecentEntries returns the latest entries for browsing, newest
	// first, capped.
	ListRecentEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error)
}
