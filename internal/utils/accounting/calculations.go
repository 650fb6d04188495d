package accounting

import (
	"fmt"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebitCreditTotals sums both sides of a set of journal lines.
func DebitCreditTotals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Side == domain.Debit {
			debits = debits.Add(l.Amount)
		} else {
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}

// WithinTolerance reports whether the two totals differ by no more than the
// balance tolerance.
func WithinTolerance(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThanOrEqual(domain.BalanceTolerance)
}

// ValidateEntryBalance enforces the double-entry invariant on a line set:
// at least two lines, non-negative amounts, known accounts, and debit/credit
// totals within tolerance. Returns *apperrors.UnbalancedEntryError on a
// tolerance breach so callers can surface both totals.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	for _, l := range lines {
		if l.Amount.IsNegative() {
			return fmt.Errorf("%w: line amount must be non-negative for account %s", apperrors.ErrValidation, l.AccountCode)
		}
		if _, ok := domain.ChartOfAccounts[l.AccountCode]; !ok {
			return fmt.Errorf("%w: unknown account code %s", apperrors.ErrValidation, l.AccountCode)
		}
		if l.Side != domain.Debit && l.Side != domain.Credit {
			return fmt.Errorf("%w: invalid side %q for account %s", apperrors.ErrValidation, l.Side, l.AccountCode)
		}
	}
	debits, credits := DebitCreditTotals(lines)
	if !WithinTolerance(debits, credits) {
		return &apperrors.UnbalancedEntryError{Debits: debits, Credits: credits}
	}
	return nil
}

// SignedAmount applies the normal-side rule: a line on the account's normal
// side increases its balance, the opposite side decreases it.
func SignedAmount(line domain.JournalLine, account domain.Account) decimal.Decimal {
	increases := (account.NormalSide == domain.DebitNormal && line.Side == domain.Debit) ||
		(account.NormalSide == domain.CreditNormal && line.Side == domain.Credit)
	if increases {
		return line.Amount
	}
	return line.Amount.Neg()
}

// FoldBalances folds journal entries into per-account signed balances using
// the normal-side rule. Lines on accounts missing from the chart are skipped,
// matching the statement folds.
func FoldBalances(entries []domain.JournalEntry) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(domain.ChartOfAccounts))
	for code := range domain.ChartOfAccounts {
		balances[code] = decimal.Zero
	}
	for _, e := range entries {
		for _, l := range e.Lines {
			acc, ok := domain.ChartOfAccounts[l.AccountCode]
			if !ok {
				continue
			}
			balances[l.AccountCode] = balances[l.AccountCode].Add(SignedAmount(l, acc))
		}
	}
	return balances
}
