package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
)

// Collection windows. Receivables older than 90 days are either collected
// or written off, so unbounded historical scans are rejected as
// non-representative of active collections.
const (
	receivableWindowDays = 90
	payableWindowDays    = 30
	maxReceivableDocs    = 200
	maxPayableDocs       = 100
)

// receivableService derives open receivables/payables from the source
// business documents, not from the journal.
type receivableService struct {
	BaseService
	saleRepo    portsrepo.SaleDocumentRepository
	expenseRepo portsrepo.ExpenseDocumentRepository
	now         func() time.Time
}

// NewReceivableService creates the receivables/payables tracker.
func NewReceivableService(saleRepo portsrepo.SaleDocumentRepository, expenseRepo portsrepo.ExpenseDocumentRepository) portssvc.ReceivableSvcFacade {
	return &receivableService{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// DueDateOf resolves a sale's due date: explicit when set, otherwise the
// default payment term after issue.
func DueDateOf(sale domain.SaleDocument) time.Time {
	if sale.DueDate != nil {
		return *sale.DueDate
	}
	return sale.IssuedAt.AddDate(0, 0, domain.DefaultPaymentTermDays)
}

func daysUntil(from, due time.Time) int {
	return int(math.Ceil(due.Sub(from).Hours() / 24))
}

// ListOpenReceivables implements portssvc.ReceivableSvcFacade.
func (s *receivableService) ListOpenReceivables(ctx context.Context, companyID string) ([]domain.Receivable, error) {
	now := s.now()
	since := now.AddDate(0, 0, -receivableWindowDays)

	sales, err := s.saleRepo.ListConverted(ctx, companyID, since, maxReceivableDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to read sale documents: %w", err)
	}

	receivables := make([]domain.Receivable, 0, len(sales))
	for _, sale := range sales {
		if sale.IsSettled || sale.IsDeleted {
			continue
		}
		due := DueDateOf(sale)
		days := daysUntil(now, due)
		status := domain.AgingPending
		if days < 0 {
			status = domain.AgingOverdue
		}
		receivables = append(receivables, domain.Receivable{
			ID:           sale.ID,
			Number:       sale.Number,
			Counterparty: sale.Client,
			Amount:       sale.Total,
			IssuedAt:     sale.IssuedAt,
			DueDate:      due,
			DaysUntilDue: days,
			Status:       status,
		})
	}

	s.LogInfo(ctx, "Open receivables listed", slog.Int("count", len(receivables)))
	return receivables, nil
}

// ListOpenPayables implements portssvc.ReceivableSvcFacade.
func (s *receivableService) ListOpenPayables(ctx context.Context, companyID string) ([]domain.Payable, error) {
	since := s.now().AddDate(0, 0, -payableWindowDays)

	expenses, err := s.expenseRepo.ListUnsettled(ctx, companyID, since, maxPayableDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to read expense documents: %w", err)
	}

	payables := make([]domain.Payable, 0, len(expenses))
	for _, exp := range expenses {
		if exp.IsSettled || exp.IsDeleted {
			continue
		}
		supplier := exp.Supplier
		if supplier == "" {
			supplier = "—"
		}
		payables = append(payables, domain.Payable{
			ID:           exp.ID,
			Counterparty: supplier,
			Category:     exp.Category,
			Amount:       exp.Amount,
			IssuedAt:     exp.IssuedAt,
		})
	}

	s.LogInfo(ctx, "Open payables listed", slog.Int("count", len(payables)))
	return payables, nil
}
