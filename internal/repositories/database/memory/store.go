// Package memory provides a mutex-guarded in-memory document store. It backs
// the test suites and the STORE_BACKEND=memory deployment mode used for
// demos and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
)

// Store holds every collection behind a single mutex. The idempotency key
// set makes AppendEntry a conditional write: check and insert happen under
// the same lock.
type Store struct {
	mu       sync.Mutex
	entries  map[string][]domain.JournalEntry // companyID -> entries, insertion order
	eventKey map[string]string                // idempotency key -> entryID
	sales    map[string][]domain.SaleDocument
	expenses map[string][]domain.ExpenseDocument
	alerts   map[string][]domain.FinancialAlert // companyID|month -> batch contents
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries:  make(map[string][]domain.JournalEntry),
		eventKey: make(map[string]string),
		sales:    make(map[string][]domain.SaleDocument),
		expenses: make(map[string][]domain.ExpenseDocument),
		alerts:   make(map[string][]domain.FinancialAlert),
	}
}

var (
	_ portsrepo.JournalRepository         = (*Store)(nil)
	_ portsrepo.SaleDocumentRepository    = (*Store)(nil)
	_ portsrepo.ExpenseDocumentRepository = (*Store)(nil)
	_ portsrepo.AlertRepository           = (*Store)(nil)
)

func eventKeyOf(companyID string, eventType domain.EventType, sourceEventID string) string {
	return companyID + "|" + string(eventType) + "|" + sourceEventID
}

// AppendEntry implements portsrepo.JournalRepository.
func (s *Store) AppendEntry(_ context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.HasIdempotencyKey() {
		key := eventKeyOf(entry.CompanyID, entry.SourceEventType, entry.SourceEventID)
		if _, exists := s.eventKey[key]; exists {
			return fmt.Errorf("%w: entry for event %s/%s already recorded",
				apperrors.ErrDuplicate, entry.SourceEventType, entry.SourceEventID)
		}
		s.eventKey[key] = entry.EntryID
	}

	s.entries[entry.CompanyID] = append(s.entries[entry.CompanyID], entry)
	return nil
}

// FindBySourceEvent implements portsrepo.JournalRepository.
func (s *Store) FindBySourceEvent(_ context.Context, companyID string, eventType domain.EventType, sourceEventID string) (*domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.eventKey[eventKeyOf(companyID, eventType, sourceEventID)]
	if !ok {
		return nil, fmt.Errorf("%w: no entry for event %s/%s", apperrors.ErrNotFound, eventType, sourceEventID)
	}
	for _, e := range s.entries[companyID] {
		if e.EntryID == entryID {
			entry := e
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("%w: no entry for event %s/%s", apperrors.ErrNotFound, eventType, sourceEventID)
}

func sortByDateAsc(entries []domain.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

// ListEntriesByDateRange implements portsrepo.JournalRepository.
func (s *Store) ListEntriesByDateRange(_ context.Context, companyID string, from, to time.Time, limit int) ([]domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.JournalEntry
	for _, e := range s.entries[companyID] {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	sortByDateAsc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListEntries implements portsrepo.JournalRepository.
func (s *Store) ListEntries(_ context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.JournalEntry, len(s.entries[companyID]))
	copy(out, s.entries[companyID])
	sortByDateAsc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListRecentEntries implements portsrepo.JournalRepository.
func (s *Store) ListRecentEntries(_ context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.JournalEntry, len(s.entries[companyID]))
	copy(out, s.entries[companyID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SeedSale stores a sale document.
func (s *Store) SeedSale(sale domain.SaleDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[sale.CompanyID] = append(s.sales[sale.CompanyID], sale)
}

// SeedExpense stores an expense document.
func (s *Store) SeedExpense(exp domain.ExpenseDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[exp.CompanyID] = append(s.expenses[exp.CompanyID], exp)
}

// ListConverted implements portsrepo.SaleDocumentRepository.
func (s *Store) ListConverted(_ context.Context, companyID string, since time.Time, limit int) ([]domain.SaleDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.SaleDocument
	for _, sale := range s.sales[companyID] {
		if sale.Status != domain.SaleConverted || sale.IsDeleted {
			continue
		}
		if !since.IsZero() && sale.IssuedAt.Before(since) {
			continue
		}
		out = append(out, sale)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListExpenses implements portsrepo.ExpenseDocumentRepository.
func (s *Store) ListExpenses(_ context.Context, companyID string, from, to time.Time, limit int) ([]domain.ExpenseDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ExpenseDocument
	for _, exp := range s.expenses[companyID] {
		if exp.IsDeleted {
			continue
		}
		if !from.IsZero() && exp.IssuedAt.Before(from) {
			continue
		}
		if exp.IssuedAt.After(to) {
			continue
		}
		out = append(out, exp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListUnsettled implements portsrepo.ExpenseDocumentRepository.
func (s *Store) ListUnsettled(_ context.Context, companyID string, since time.Time, limit int) ([]domain.ExpenseDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ExpenseDocument
	for _, exp := range s.expenses[companyID] {
		if exp.IsDeleted || exp.IsSettled {
			continue
		}
		if !since.IsZero() && exp.IssuedAt.Before(since) {
			continue
		}
		out = append(out, exp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveAlertBatch implements portsrepo.AlertRepository.
func (s *Store) SaveAlertBatch(_ context.Context, companyID string, month string, alerts []domain.FinancialAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := companyID + "|" + month
	s.alerts[key] = append(s.alerts[key], alerts...)
	return nil
}

// ListAlertsByMonth implements portsrepo.AlertRepository.
func (s *Store) ListAlertsByMonth(_ context.Context, companyID string, month string) ([]domain.FinancialAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := companyID + "|" + month
	out := make([]domain.FinancialAlert, len(s.alerts[key]))
	copy(out, s.alerts[key])
	return out, nil
}
