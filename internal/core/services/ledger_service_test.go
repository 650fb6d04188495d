package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/gestium-IO/gestium-enterprise/internal/core/services"
	"github.com/gestium-IO/gestium-enterprise/internal/repositories/database/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "company-1"

var testPeriod = domain.Period{Year: 2026, Month: time.March}

func entryLine(code string, side domain.EntrySide, amount int64) domain.JournalLine {
	return domain.JournalLine{
		AccountCode: code,
		AccountName: domain.ChartOfAccounts[code].Name,
		Side:        side,
		Amount:      decimal.NewFromInt(amount),
	}
}

func seedEntry(t *testing.T, store *memory.Store, date time.Time, lines ...domain.JournalLine) {
	t.Helper()
	err := store.AppendEntry(context.Background(), domain.JournalEntry{
		EntryID:    uuid.NewString(),
		CompanyID:  testCompanyID,
		Date:       date,
		Lines:      lines,
		IsBalanced: true,
		CreatedAt:  date,
		CreatedBy:  "system",
	})
	require.NoError(t, err)
}

// seedMarchLedger posts a sale, its collection, and two expenses in March.
func seedMarchLedger(t *testing.T, store *memory.Store) {
	t.Helper()
	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// Sale: 100000 net + 19000 VAT.
	seedEntry(t, store, march,
		entryLine(domain.AccountReceivable, domain.Debit, 119000),
		entryLine(domain.AccountSalesRevenue, domain.Credit, 100000),
		entryLine(domain.AccountSalesTaxPayable, domain.Credit, 19000),
	)
	// Collection.
	seedEntry(t, store, march.AddDate(0, 0, 5),
		entryLine(domain.AccountBank, domain.Debit, 119000),
		entryLine(domain.AccountReceivable, domain.Credit, 119000),
	)
	// Raw materials (cost of goods) and transport (operating expense).
	seedEntry(t, store, march.AddDate(0, 0, 7),
		entryLine(domain.AccountCostOfGoods, domain.Debit, 40000),
		entryLine(domain.AccountBank, domain.Credit, 40000),
	)
	seedEntry(t, store, march.AddDate(0, 0, 8),
		entryLine(domain.AccountTransport, domain.Debit, 10000),
		entryLine(domain.AccountBank, domain.Credit, 10000),
	)
}

func TestComputeIncomeStatement(t *testing.T) {
	store := memory.NewStore()
	seedMarchLedger(t, store)
	svc := services.NewLedgerService(store)

	statement, err := svc.ComputeIncomeStatement(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.True(t, statement.Income.Equal(decimal.NewFromInt(100000)), "income: %s", statement.Income)
	assert.True(t, statement.Cost.Equal(decimal.NewFromInt(40000)))
	assert.True(t, statement.OperatingExpense.Equal(decimal.NewFromInt(10000)))
	assert.True(t, statement.GrossProfit.Equal(decimal.NewFromInt(60000)))
	assert.True(t, statement.OperatingProfit.Equal(decimal.NewFromInt(50000)))
	assert.True(t, statement.EstimatedTax.Equal(decimal.NewFromInt(15000)), "tax: %s", statement.EstimatedTax)
	assert.True(t, statement.NetProfit.Equal(decimal.NewFromInt(35000)))
	assert.True(t, statement.GrossMarginPct.Equal(decimal.NewFromInt(60)))
	assert.True(t, statement.NetMarginPct.Equal(decimal.NewFromInt(35)))
}

func TestComputeIncomeStatement_EmptyPeriod(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewLedgerService(store)

	statement, err := svc.ComputeIncomeStatement(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	// Margins stay at zero when there is no income; no division happens.
	assert.True(t, statement.Income.IsZero())
	assert.True(t, statement.GrossMarginPct.IsZero())
	assert.True(t, statement.NetMarginPct.IsZero())
	assert.True(t, statement.EstimatedTax.IsZero())
}

func TestComputeIncomeStatement_NoTaxOnLoss(t *testing.T) {
	store := memory.NewStore()
	march := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	seedEntry(t, store, march,
		entryLine(domain.AccountPayroll, domain.Debit, 80000),
		entryLine(domain.AccountBank, domain.Credit, 80000),
	)
	svc := services.NewLedgerService(store)

	statement, err := svc.ComputeIncomeStatement(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.True(t, statement.OperatingProfit.IsNegative())
	assert.True(t, statement.EstimatedTax.IsZero())
	assert.True(t, statement.NetProfit.Equal(statement.OperatingProfit))
}

func TestComputeBalanceSheet_Closes(t *testing.T) {
	store := memory.NewStore()
	seedMarchLedger(t, store)
	// Capital contribution before the month's activity.
	seedEntry(t, store, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		entryLine(domain.AccountBank, domain.Debit, 5000000),
		entryLine(domain.AccountCapital, domain.Credit, 5000000),
	)
	svc := services.NewLedgerService(store)

	sheet, err := svc.ComputeBalanceSheet(context.Background(), testCompanyID)
	require.NoError(t, err)

	// Assets: bank 5000000 + 119000 - 40000 - 10000 = 5069000.
	assert.True(t, sheet.Assets.Equal(decimal.NewFromInt(5069000)), "assets: %s", sheet.Assets)
	// Liabilities: VAT payable 19000.
	assert.True(t, sheet.Liabilities.Equal(decimal.NewFromInt(19000)))
	// Equity: capital 5000000 + current earnings (100000 - 50000).
	assert.True(t, sheet.Equity.Equal(decimal.NewFromInt(5050000)), "equity: %s", sheet.Equity)
	assert.True(t, sheet.IsBalanced, "balance sheet must close for balanced postings")

	retained := sheet.Balances[domain.AccountRetainedEarnings]
	assert.True(t, retained.Equal(decimal.NewFromInt(50000)))
}

func TestComputeCashFlow(t *testing.T) {
	store := memory.NewStore()
	seedMarchLedger(t, store)
	svc := services.NewLedgerService(store)

	flow, err := svc.ComputeCashFlow(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.True(t, flow.CashIn.Equal(decimal.NewFromInt(119000)))
	assert.True(t, flow.CashOut.Equal(decimal.NewFromInt(50000)))
	assert.True(t, flow.NetCash.Equal(decimal.NewFromInt(69000)))
}

func TestComputeTaxSummary(t *testing.T) {
	store := memory.NewStore()
	seedMarchLedger(t, store)
	svc := services.NewLedgerService(store)

	taxes, err := svc.ComputeTaxSummary(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)

	assert.True(t, taxes.SalesTax.Equal(decimal.NewFromInt(19000)))
	assert.True(t, taxes.Withholding.IsZero())
	// Turnover estimate: 100000 * 0.00414 rounded to the unit.
	assert.True(t, taxes.TurnoverTax.Equal(decimal.NewFromInt(414)), "turnover: %s", taxes.TurnoverTax)
	assert.True(t, taxes.Total.Equal(decimal.NewFromInt(19414)))
}

func TestComputeTaxSummary_IgnoresOtherPeriods(t *testing.T) {
	store := memory.NewStore()
	seedEntry(t, store, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
		entryLine(domain.AccountReceivable, domain.Debit, 119000),
		entryLine(domain.AccountSalesRevenue, domain.Credit, 100000),
		entryLine(domain.AccountSalesTaxPayable, domain.Credit, 19000),
	)
	svc := services.NewLedgerService(store)

	taxes, err := svc.ComputeTaxSummary(context.Background(), testCompanyID, testPeriod)
	require.NoError(t, err)
	assert.True(t, taxes.SalesTax.IsZero())
	assert.True(t, taxes.TurnoverTax.IsZero())
}
