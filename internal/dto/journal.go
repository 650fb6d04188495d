package dto

import (
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostAutomaticEntryRequest is the payload business-event emitters send when
// a sale is confirmed, a payment lands, an expense is recorded or a credit
// note is issued.
type PostAutomaticEntryRequest struct {
	EventType string           `json:"eventType" binding:"required"`
	EventData domain.EventData `json:"eventData"`
}

// ManualEntryLine is one line of a hand-written journal entry.
type ManualEntryLine struct {
	AccountCode string          `json:"accountCode" binding:"required,account_code"`
	Side        string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateManualEntryRequest is a draft manual entry. Imbalance is reported
// back as a structured rejection, not an error, so the operator can correct
// and resubmit.
type CreateManualEntryRequest struct {
	Date         *time.Time        `json:"date,omitempty"`
	Description  string            `json:"description" binding:"required"`
	Counterparty string            `json:"counterparty"`
	Lines        []ManualEntryLine `json:"lines" binding:"required,min=2,dive"`
}

// PostingResult reports the outcome of an automatic posting. Duplicate marks
// the idempotent no-op path: the event was already posted and nothing was
// written.
type PostingResult struct {
	Entry     *domain.JournalEntry `json:"entry,omitempty"`
	Duplicate bool                 `json:"duplicate"`
}

// ManualEntryResult is the interactive outcome of a manual posting. On
// rejection both totals are populated so the discrepancy is visible.
type ManualEntryResult struct {
	Accepted    bool                 `json:"accepted"`
	Entry       *domain.JournalEntry `json:"entry,omitempty"`
	DebitTotal  decimal.Decimal      `json:"debitTotal"`
	CreditTotal decimal.Decimal      `json:"creditTotal"`
	Message     string               `json:"message,omitempty"`
}

// ToJournalLines converts the request lines into domain lines, resolving
// account names from the chart.
func (r CreateManualEntryRequest) ToJournalLines() []domain.JournalLine {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		name := ""
		if acc, ok := domain.ChartOfAccounts[l.AccountCode]; ok {
			name = acc.Name
		}
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			AccountName: name,
			Side:        domain.EntrySide(l.Side),
			Amount:      l.Amount,
		}
	}
	return lines
}
