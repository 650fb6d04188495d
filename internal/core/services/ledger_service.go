package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Result-size safety caps for journal replays. Statements are recomputed
// from scratch per call, so the reads must stay bounded.
const (
	maxPeriodEntries  = 500
	maxHistoryEntries = 5000
)

var hundred = decimal.NewFromInt(100)

// ledgerService reconstructs statements by replaying journal entries.
// The balance sheet replays the whole (capped) history every time; monthly
// snapshots would shrink that read but are intentionally not implemented.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
}

// NewLedgerService creates the statement calculator.
func NewLedgerService(journalRepo portsrepo.JournalRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{journalRepo: journalRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) periodEntries(ctx context.Context, companyID string, period domain.Period) ([]domain.JournalEntry, error) {
	from, to := period.Bounds()
	entries, err := s.journalRepo.ListEntriesByDateRange(ctx, companyID, from, to, maxPeriodEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal for period %s: %w", period, err)
	}
	return entries, nil
}

// ComputeIncomeStatement implements portssvc.LedgerSvcFacade.
func (s *ledgerService) ComputeIncomeStatement(ctx context.Context, companyID string, period domain.Period) (*domain.IncomeStatement, error) {
	entries, err := s.periodEntries(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	income, cost, opex := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range entries {
		for _, l := range e.Lines {
			acc, ok := domain.ChartOfAccounts[l.AccountCode]
			if !ok {
				continue
			}
			switch {
			case acc.Classification == domain.Revenue && l.Side == domain.Credit:
				income = income.Add(l.Amount)
			case acc.Classification == domain.Expense && l.Side == domain.Debit:
				if l.AccountCode == domain.AccountCostOfGoods {
					cost = cost.Add(l.Amount)
				} else {
					opex = opex.Add(l.Amount)
				}
			}
		}
	}

	grossProfit := income.Sub(cost)
	operatingProfit := grossProfit.Sub(opex)
	estimatedTax := decimal.Zero
	if operatingProfit.IsPositive() {
		estimatedTax = operatingProfit.Mul(domain.StatutoryTaxRate)
	}
	netProfit := operatingProfit.Sub(estimatedTax)

	grossMargin, netMargin := decimal.Zero, decimal.Zero
	if income.IsPositive() {
		grossMargin = grossProfit.Div(income).Mul(hundred)
		netMargin = netProfit.Div(income).Mul(hundred)
	}

	s.LogInfo(ctx, "Income statement computed",
		slog.String("period", period.String()), slog.Int("entries", len(entries)))
	return &domain.IncomeStatement{
		Period:           period,
		Income:           income,
		Cost:             cost,
		OperatingExpense: opex,
		GrossProfit:      grossProfit,
		OperatingProfit:  operatingProfit,
		EstimatedTax:     estimatedTax,
		NetProfit:        netProfit,
		GrossMarginPct:   grossMargin,
		NetMarginPct:     netMargin,
	}, nil
}

// ComputeBalanceSheet implements portssvc.LedgerSvcFacade. It replays every
// recorded entry (bounded by maxHistoryEntries) and cross-checks that the
// classification totals close: assets = liabilities + equity.
func (s *ledgerService) ComputeBalanceSheet(ctx context.Context, companyID string) (*domain.BalanceSheet, error) {
	entries, err := s.journalRepo.ListEntries(ctx, companyID, maxHistoryEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal history: %w", err)
	}

	balances := accounting.FoldBalances(entries)

	assets, liabilities, equity := decimal.Zero, decimal.Zero, decimal.Zero
	for code, acc := range domain.ChartOfAccounts {
		bal := balances[code]
		switch acc.Classification {
		case domain.Asset:
			assets = assets.Add(bal)
		case domain.Liability:
			liabilities = liabilities.Add(bal)
		case domain.Equity:
			equity = equity.Add(bal)
		}
	}

	// Revenue and expense balances net into current earnings; without them
	// the equation only closes once profits are formally closed to equity.
	retained := decimal.Zero
	for code, acc := range domain.ChartOfAccounts {
		switch acc.Classification {
		case domain.Revenue:
			retained = retained.Add(balances[code])
		case domain.Expense:
			retained = retained.Sub(balances[code])
		}
	}
	equity = equity.Add(retained)
	balances[domain.AccountRetainedEarnings] = balances[domain.AccountRetainedEarnings].Add(retained)

	diff := assets.Sub(liabilities.Add(equity)).Abs()
	report := &domain.BalanceSheet{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
		IsBalanced:  diff.LessThan(domain.BalanceTolerance),
		Balances:    balances,
	}

	if !report.IsBalanced {
		s.LogWarn(ctx, "Balance sheet does not close",
			slog.String("difference", diff.String()), slog.Int("entries", len(entries)))
	}
	return report, nil
}

// ComputeCashFlow implements portssvc.LedgerSvcFacade.
func (s *ledgerService) ComputeCashFlow(ctx context.Context, companyID string, period domain.Period) (*domain.CashFlow, error) {
	entries, err := s.periodEntries(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	cashIn, cashOut := decimal.Zero, decimal.Zero
	for _, e := range entries {
		for _, l := range e.Lines {
			if !domain.CashAccounts[l.AccountCode] {
				continue
			}
			if l.Side == domain.Debit {
				cashIn = cashIn.Add(l.Amount)
			} else {
				cashOut = cashOut.Add(l.Amount)
			}
		}
	}

	return &domain.CashFlow{
		Period:  period,
		CashIn:  cashIn,
		CashOut: cashOut,
		NetCash: cashIn.Sub(cashOut),
	}, nil
}

// ComputeTaxSummary implements portssvc.LedgerSvcFacade. The turnover tax is
// an estimate over period income, independent of any posted liability.
func (s *ledgerService) ComputeTaxSummary(ctx context.Context, companyID string, period domain.Period) (*domain.TaxSummary, error) {
	entries, err := s.periodEntries(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	salesTax, withholding := decimal.Zero, decimal.Zero
	for _, e := range entries {
		for _, l := range e.Lines {
			if l.Side != domain.Credit {
				continue
			}
			switch l.AccountCode {
			case domain.AccountSalesTaxPayable:
				salesTax = salesTax.Add(l.Amount)
			case domain.AccountWithholding:
				withholding = withholding.Add(l.Amount)
			}
		}
	}

	statement, err := s.ComputeIncomeStatement(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	turnover := statement.Income.Mul(domain.TurnoverTaxPerMille).Round(0)

	return &domain.TaxSummary{
		Period:      period,
		SalesTax:    salesTax,
		Withholding: withholding,
		TurnoverTax: turnover,
		Total:       salesTax.Add(withholding).Add(turnover),
	}, nil
}
