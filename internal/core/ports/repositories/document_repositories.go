package repositories

import (
	"context"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
)

// SaleDocumentRepository reads confirmed sales from the document store.
// Soft-deleted documents are filtered out by every query.
type SaleDocumentRepository interface {
	// ListConverted returns converted sales issued at or after since (zero
	// time: no lower bound), newest first, at most limit.
	ListConverted(ctx context.Context, companyID string, since time.Time, limit int) ([]domain.SaleDocument, error)
}

// ExpenseDocumentRepository reads recorded expenses from the document store.
type ExpenseDocumentRepository interface {
	// ListExpenses returns expenses issued in [from, to], newest first, at
	// most limit. A zero from means no lower bound.
	ListExpenses(ctx context.Context, companyID string, from, to time.Time, limit int) ([]domain.ExpenseDocument, error)

	// ListUnsettled returns unpaid expenses issued at or after since,
	// newest first, at most limit.
	ListUnsettled(ctx context.Context, companyID string, since time.Time, limit int) ([]domain.ExpenseDocument, error)
}

// AlertRepository persists financial alerts as immutable month-tagged audit
// batches.
type AlertRepository interface {
	SaveAlertBatch(ctx context.Context, companyID string, month string, alerts []domain.FinancialAlert) error
	ListAlertsByMonth(ctx context.Context, companyID string, month string) ([]domain.FinancialAlert, error)
}
