package services

import (
	"context"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
)

// LedgerSvcFacade reconstructs financial statements by replaying journal
// entries. All computations are pure folds over bounded reads; nothing is
// cached between calls.
type LedgerSvcFacade interface {
	ComputeIncomeStatement(ctx context.Context, companyID string, period domain.Period) (*domain.IncomeStatement, error)

	// ComputeBalanceSheet replays the entire history (capped) into per-account
	// balances and cross-checks assets = liabilities + equity.
	ComputeBalanceSheet(ctx context.Context, companyID string) (*domain.BalanceSheet, error)

	ComputeCashFlow(ctx context.Context, companyID string, period domain.Period) (*domain.CashFlow, error)

	ComputeTaxSummary(ctx context.Context, companyID string, period domain.Period) (*domain.TaxSummary, error)
}

// ReceivableSvcFacade derives open receivables and payables from the source
// business documents, independently of the journal.
type ReceivableSvcFacade interface {
	// ListOpenReceivables covers the active collection window: converted,
	// unsettled sales from the last 90 days.
	ListOpenReceivables(ctx context.Context, companyID string) ([]domain.Receivable, error)

	// ListOpenPayables covers unsettled expenses from the last 30 days.
	ListOpenPayables(ctx context.Context, companyID string) ([]domain.Payable, error)
}
