package accounting_test

import (
	"errors"
	"testing"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/gestium-IO/gestium-enterprise/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(code string, side domain.EntrySide, amount int64) domain.JournalLine {
	return domain.JournalLine{
		AccountCode: code,
		Side:        side,
		Amount:      decimal.NewFromInt(amount),
	}
}

func TestDebitCreditTotals(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.AccountReceivable, domain.Debit, 119000),
		line(domain.AccountSalesRevenue, domain.Credit, 100000),
		line(domain.AccountSalesTaxPayable, domain.Credit, 19000),
	}
	debits, credits := accounting.DebitCreditTotals(lines)
	assert.True(t, debits.Equal(decimal.NewFromInt(119000)))
	assert.True(t, credits.Equal(decimal.NewFromInt(119000)))
}

func TestValidateEntryBalance_Balanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.AccountBank, domain.Debit, 50000),
		line(domain.AccountReceivable, domain.Credit, 50000),
	}
	assert.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_WithinTolerance(t *testing.T) {
	// One unit of rounding drift is accepted.
	lines := []domain.JournalLine{
		{AccountCode: domain.AccountBank, Side: domain.Debit, Amount: decimal.NewFromFloat(100000.50)},
		{AccountCode: domain.AccountReceivable, Side: domain.Credit, Amount: decimal.NewFromInt(100000)},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.AccountBank, domain.Debit, 100000),
		line(domain.AccountReceivable, domain.Credit, 90000),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)

	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Debits.Equal(decimal.NewFromInt(100000)))
	assert.True(t, unbalanced.Credits.Equal(decimal.NewFromInt(90000)))
}

func TestValidateEntryBalance_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalLine
	}{
		{
			name:  "single line",
			lines: []domain.JournalLine{line(domain.AccountBank, domain.Debit, 100)},
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				line(domain.AccountBank, domain.Debit, -100),
				line(domain.AccountReceivable, domain.Credit, -100),
			},
		},
		{
			name: "unknown account",
			lines: []domain.JournalLine{
				line("9999", domain.Debit, 100),
				line(domain.AccountBank, domain.Credit, 100),
			},
		},
		{
			name: "invalid side",
			lines: []domain.JournalLine{
				{AccountCode: domain.AccountBank, Side: "BOTH", Amount: decimal.NewFromInt(100)},
				line(domain.AccountReceivable, domain.Credit, 100),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := accounting.ValidateEntryBalance(tc.lines)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestSignedAmount_NormalSideRule(t *testing.T) {
	bank := domain.ChartOfAccounts[domain.AccountBank]               // debit normal
	revenue := domain.ChartOfAccounts[domain.AccountSalesRevenue]    // credit normal
	amount := decimal.NewFromInt(1000)

	assert.True(t, accounting.SignedAmount(line(domain.AccountBank, domain.Debit, 1000), bank).Equal(amount))
	assert.True(t, accounting.SignedAmount(line(domain.AccountBank, domain.Credit, 1000), bank).Equal(amount.Neg()))
	assert.True(t, accounting.SignedAmount(line(domain.AccountSalesRevenue, domain.Credit, 1000), revenue).Equal(amount))
	assert.True(t, accounting.SignedAmount(line(domain.AccountSalesRevenue, domain.Debit, 1000), revenue).Equal(amount.Neg()))
}

func TestFoldBalances(t *testing.T) {
	entries := []domain.JournalEntry{
		{Lines: []domain.JournalLine{
			line(domain.AccountReceivable, domain.Debit, 119000),
			line(domain.AccountSalesRevenue, domain.Credit, 100000),
			line(domain.AccountSalesTaxPayable, domain.Credit, 19000),
		}},
		{Lines: []domain.JournalLine{
			line(domain.AccountBank, domain.Debit, 119000),
			line(domain.AccountReceivable, domain.Credit, 119000),
		}},
	}

	balances := accounting.FoldBalances(entries)
	assert.True(t, balances[domain.AccountReceivable].IsZero(), "receivable should net to zero after collection")
	assert.True(t, balances[domain.AccountBank].Equal(decimal.NewFromInt(119000)))
	assert.True(t, balances[domain.AccountSalesRevenue].Equal(decimal.NewFromInt(100000)))
	assert.True(t, balances[domain.AccountSalesTaxPayable].Equal(decimal.NewFromInt(19000)))
}

func TestFoldBalances_SkipsUnknownAccounts(t *testing.T) {
	entries := []domain.JournalEntry{
		{Lines: []domain.JournalLine{line("0000", domain.Debit, 500)}},
	}
	balances := accounting.FoldBalances(entries)
	_, exists := balances["0000"]
	assert.False(t, exists)
}
