package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a journal line is a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// EventType tags the business event a journal entry was derived from.
// The wire values are the source-document event tags and are part of the
// stored idempotency key, so they never change.
type EventType string

const (
	SaleConfirmed   EventType = "venta_confirmada"
	PaymentReceived EventType = "pago_recibido"
	ExpenseRecorded EventType = "gasto_registrado"
	CreditNote      EventType = "nota_credito"
	ManualEvent     EventType = "manual"
)

// BalanceTolerance is the absolute debit/credit difference treated as
// balanced. One currency unit absorbs rounding noise from percentage-based
// tax splits; anything beyond it is a hard posting failure.
var BalanceTolerance = decimal.NewFromInt(1)

// JournalLine is one side of a posting. It has no lifecycle of its own and
// is owned exclusively by its parent entry.
type JournalLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Side        EntrySide       `json:"side"`
	Amount      decimal.Decimal `json:"amount"` // always non-negative
}

// JournalEntry is the ledger's atomic unit: a balanced set of debit/credit
// lines derived from one business event or one manual action. Entries are
// append-only; they are never updated or deleted once persisted.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	CompanyID        string          `json:"companyID"`
	Date             time.Time       `json:"date"`
	SourceEventType  EventType       `json:"sourceEventType"`
	SourceEventID    string          `json:"sourceEventID"` // empty for manual entries
	Reference        string          `json:"reference"`
	Counterparty     string          `json:"counterparty"`
	Description      string          `json:"description"`
	Lines            []JournalLine   `json:"lines"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	IsBalanced       bool            `json:"isBalanced"`
	IsManual         bool            `json:"isManual"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// HasIdempotencyKey reports whether the entry carries a source-event key
// usable for duplicate prevention.
func (e *JournalEntry) HasIdempotencyKey() bool {
	return e.SourceEventID != "" && e.SourceEventType != "" && e.SourceEventType != ManualEvent
}

// EventData is the payload handed over by business-event emitters.
// Which fields matter depends on the event type; ID is required for
// idempotent posting.
type EventData struct {
	ID           string          `json:"id"`
	Reference    string          `json:"reference"`
	Counterparty string          `json:"counterparty"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Total        decimal.Decimal `json:"total"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Amount       decimal.Decimal `json:"amount"`
}
