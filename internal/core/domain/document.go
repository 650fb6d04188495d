package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus tracks a sale document through its lifecycle. Only converted
// sales generate receivables and journal postings.
type SaleStatus string

const (
	SaleDraft     SaleStatus = "Borrador"
	SaleSent      SaleStatus = "Enviada"
	SaleConverted SaleStatus = "Convertida"
)

// SaleDocument is a confirmed quotation/invoice as stored by the sales
// module. The ledger reads these; it never writes them.
type SaleDocument struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"companyID"`
	Number       string          `json:"number"`
	Client       string          `json:"client"`
	Status       SaleStatus      `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	IssuedAt     time.Time       `json:"issuedAt"`
	DueDate      *time.Time      `json:"dueDate,omitempty"` // nil: due 30 days after issue
	IsSettled    bool            `json:"isSettled"`
	SettledAt    *time.Time      `json:"settledAt,omitempty"`
	IsDeleted    bool            `json:"isDeleted"`
}

// ExpenseDocument is a recorded expense as stored by the expense module.
type ExpenseDocument struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"companyID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Amount      decimal.Decimal `json:"amount"`
	IssuedAt    time.Time       `json:"issuedAt"`
	IsSettled   bool            `json:"isSettled"`
	IsDeleted   bool            `json:"isDeleted"`
}

// AgingStatus classifies an open item by its due date.
type AgingStatus string

const (
	AgingPending AgingStatus = "PENDING"
	AgingOverdue AgingStatus = "OVERDUE"
)

// DefaultPaymentTermDays is assumed when a sale has no explicit due date.
const DefaultPaymentTermDays = 30

// Receivable is an open customer debt derived from a sale document at query
// time. It is never persisted.
type Receivable struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	IssuedAt     time.Time       `json:"issuedAt"`
	DueDate      time.Time       `json:"dueDate"`
	DaysUntilDue int             `json:"daysUntilDue"` // negative when overdue
	Status       AgingStatus     `json:"status"`
}

// Payable is an open supplier obligation derived from an expense document.
type Payable struct {
	ID           string          `json:"id"`
	Counterparty string          `json:"counterparty"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	IssuedAt     time.Time       `json:"issuedAt"`
}
