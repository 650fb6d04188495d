package services

import (
	"fmt"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingTemplate derives the journal lines, description and total for one
// business event type. Templates are pure: all validation against the
// ledger happens afterwards in the journal service, on the one shared path.
type PostingTemplate func(data domain.EventData) (lines []domain.JournalLine, description string, total decimal.Decimal, err error)

// postingTemplates maps each automatic event type to its fixed debit/credit
// template. Adding an event type means adding exactly one entry here.
var postingTemplates = map[domain.EventType]PostingTemplate{
	domain.SaleConfirmed:   saleConfirmedTemplate,
	domain.PaymentReceived: paymentReceivedTemplate,
	domain.ExpenseRecorded: expenseRecordedTemplate,
	domain.CreditNote:      creditNoteTemplate,
}

// TemplateFor resolves the posting template for an event type.
func TemplateFor(eventType domain.EventType) (PostingTemplate, error) {
	tpl, ok := postingTemplates[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: no posting template for event type %q", apperrors.ErrValidation, eventType)
	}
	return tpl, nil
}

func line(code string, side domain.EntrySide, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{
		AccountCode: code,
		AccountName: domain.ChartOfAccounts[code].Name,
		Side:        side,
		Amount:      amount,
	}
}

// saleConfirmedTemplate: debit receivables for the full amount, credit
// revenue for the subtotal and sales tax payable for the tax.
func saleConfirmedTemplate(data domain.EventData) ([]domain.JournalLine, string, decimal.Decimal, error) {
	if data.Total.IsNegative() || data.Subtotal.IsNegative() || data.Tax.IsNegative() {
		return nil, "", decimal.Zero, fmt.Errorf("%w: sale amounts must be non-negative", apperrors.ErrValidation)
	}
	if data.Total.IsZero() {
		return nil, "", decimal.Zero, fmt.Errorf("%w: sale total is required", apperrors.ErrValidation)
	}
	lines := []domain.JournalLine{
		line(domain.AccountReceivable, domain.Debit, data.Total),
		line(domain.AccountSalesRevenue, domain.Credit, data.Subtotal),
		line(domain.AccountSalesTaxPayable, domain.Credit, data.Tax),
	}
	desc := fmt.Sprintf("Sale confirmed %s — %s", data.Reference, data.Counterparty)
	return lines, desc, data.Total, nil
}

// paymentReceivedTemplate: money moves from receivables into the bank.
func paymentReceivedTemplate(data domain.EventData) ([]domain.JournalLine, string, decimal.Decimal, error) {
	if !data.Amount.IsPositive() {
		return nil, "", decimal.Zero, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	lines := []domain.JournalLine{
		line(domain.AccountBank, domain.Debit, data.Amount),
		line(domain.AccountReceivable, domain.Credit, data.Amount),
	}
	desc := fmt.Sprintf("Payment received — %s", data.Counterparty)
	return lines, desc, data.Amount, nil
}

// expenseRecordedTemplate: debit the category's expense account, credit the
// bank. Unknown categories land on the misc expense account.
func expenseRecordedTemplate(data domain.EventData) ([]domain.JournalLine, string, decimal.Decimal, error) {
	if !data.Amount.IsPositive() {
		return nil, "", decimal.Zero, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	code := domain.ExpenseAccountForCategory(data.Category)
	lines := []domain.JournalLine{
		line(code, domain.Debit, data.Amount),
		line(domain.AccountBank, domain.Credit, data.Amount),
	}
	desc := fmt.Sprintf("Expense: %s — %s", data.Category, data.Description)
	return lines, desc, data.Amount, nil
}

// creditNoteTemplate: a sale reversal, revenue down and receivables down.
func creditNoteTemplate(data domain.EventData) ([]domain.JournalLine, string, decimal.Decimal, error) {
	if !data.Amount.IsPositive() {
		return nil, "", decimal.Zero, fmt.Errorf("%w: credit note amount must be positive", apperrors.ErrValidation)
	}
	lines := []domain.JournalLine{
		line(domain.AccountSalesRevenue, domain.Debit, data.Amount),
		line(domain.AccountReceivable, domain.Credit, data.Amount),
	}
	desc := fmt.Sprintf("Credit note — %s", data.Counterparty)
	return lines, desc, data.Amount, nil
}
