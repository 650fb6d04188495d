package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/dto"
	"github.com/gestium-IO/gestium-enterprise/internal/utils/accounting"
)

// maxRecentEntries caps journal browsing.
const maxRecentEntries = 50

// journalService owns the double-entry invariant and the duplicate-prevention
// rule. Every posting, automatic or manual, goes through this one validation
// path.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	diagnostics portssvc.DiagnosticsSink
}

// NewJournalService creates the journal engine.
func NewJournalService(journalRepo portsrepo.JournalRepository, diagnostics portssvc.DiagnosticsSink) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		diagnostics: diagnostics,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostAutomaticEntry implements portssvc.JournalSvcFacade.
func (s *journalService) PostAutomaticEntry(ctx context.Context, companyID string, eventType domain.EventType, data domain.EventData) (dto.PostingResult, error) {
	if companyID == "" {
		return dto.PostingResult{}, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}

	tpl, err := TemplateFor(eventType)
	if err != nil {
		return dto.PostingResult{}, err
	}

	lines, description, total, err := tpl(data)
	if err != nil {
		// Malformed event data is rejected before any write attempt.
		return dto.PostingResult{}, err
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		// An unbalanced entry must never be persisted, and its failure must
		// never be silent: report, then re-raise to the business workflow.
		s.report(ctx, companyID, "posting_failed", err, data)
		return dto.PostingResult{}, err
	}

	// Fast-path duplicate check. The store's conditional append is the
	// authority; this read only avoids building doomed writes.
	if data.ID != "" {
		existing, err := s.journalRepo.FindBySourceEvent(ctx, companyID, eventType, data.ID)
		if err == nil {
			s.LogWarn(ctx, "Journal entry already exists for event, skipping",
				slog.String("event_type", string(eventType)), slog.String("source_event_id", data.ID))
			return dto.PostingResult{Entry: existing, Duplicate: true}, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Duplicate pre-check failed, relying on conditional append",
				slog.String("error", err.Error()))
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		Date:            now,
		SourceEventType: eventType,
		SourceEventID:   data.ID,
		Reference:       data.Reference,
		Counterparty:    data.Counterparty,
		Description:     description,
		Lines:           lines,
		TotalAmount:     total,
		IsBalanced:      true,
		IsManual:        false,
		CreatedAt:       now,
		CreatedBy:       "system",
	}

	if err := s.journalRepo.AppendEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race to a concurrent posting of the same event; the
			// ledger holds exactly one entry either way.
			s.LogWarn(ctx, "Concurrent duplicate posting skipped",
				slog.String("event_type", string(eventType)), slog.String("source_event_id", data.ID))
			return dto.PostingResult{Duplicate: true}, nil
		}
		s.report(ctx, companyID, "posting_failed", err, entry)
		return dto.PostingResult{}, fmt.Errorf("failed to append journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("event_type", string(eventType)),
		slog.String("source_event_id", data.ID))
	return dto.PostingResult{Entry: &entry}, nil
}

// PostManualEntry implements portssvc.JournalSvcFacade.
func (s *journalService) PostManualEntry(ctx context.Context, companyID string, req dto.CreateManualEntryRequest, userID string, canPostManual bool) (dto.ManualEntryResult, error) {
	if !canPostManual {
		return dto.ManualEntryResult{}, fmt.Errorf("%w: manual entries capability required", apperrors.ErrForbidden)
	}
	if companyID == "" {
		return dto.ManualEntryResult{}, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}
	if req.Description == "" {
		return dto.ManualEntryResult{}, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	lines := req.ToJournalLines()
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		var unbalanced *apperrors.UnbalancedEntryError
		if errors.As(err, &unbalanced) {
			// Interactive path: a human retries this, so imbalance is a
			// structured rejection showing both totals, not an error.
			return dto.ManualEntryResult{
				Accepted:    false,
				DebitTotal:  unbalanced.Debits,
				CreditTotal: unbalanced.Credits,
				Message:     unbalanced.Error(),
			}, nil
		}
		return dto.ManualEntryResult{}, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	debits, credits := accounting.DebitCreditTotals(lines)
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		Date:            date,
		SourceEventType: domain.ManualEvent,
		Counterparty:    req.Counterparty,
		Description:     req.Description,
		Lines:           lines,
		TotalAmount:     debits,
		IsBalanced:      true,
		IsManual:        true,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	if err := s.journalRepo.AppendEntry(ctx, entry); err != nil {
		s.report(ctx, companyID, "manual_posting_failed", err, entry)
		return dto.ManualEntryResult{}, fmt.Errorf("failed to append manual journal entry: %w", err)
	}

	s.LogInfo(ctx, "Manual journal entry posted",
		slog.String("entry_id", entry.EntryID), slog.String("created_by", userID))
	return dto.ManualEntryResult{
		Accepted:    true,
		Entry:       &entry,
		DebitTotal:  debits,
		CreditTotal: credits,
	}, nil
}

// ListRecentEntries implements portssvc.JournalSvcFacade.
func (s *journalService) ListRecentEntries(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 || limit > maxRecentEntries {
		limit = maxRecentEntries
	}
	entries, err := s.journalRepo.ListRecentEntries(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// report forwards a posting failure to the diagnostics sink without
// affecting control flow.
func (s *journalService) report(ctx context.Context, companyID, tag string, err error, payload any) {
	if s.diagnostics != nil {
		s.diagnostics.Report(ctx, companyID, tag, err.Error(), payload)
	}
}
