package domain

import "github.com/shopspring/decimal"

// StatutoryTaxRate is the flat income-tax estimate applied to positive
// operating profit on the income statement.
var StatutoryTaxRate = decimal.NewFromFloat(0.30)

// TurnoverTaxPerMille is the local turnover tax (ICA) estimate: 4.14 per
// mille of period income. It is an estimate, not a posted liability.
var TurnoverTaxPerMille = decimal.NewFromFloat(0.00414)

// IncomeStatement is the period profit and loss derived by replaying the
// journal window.
type IncomeStatement struct {
	Period           Period          `json:"period"`
	Income           decimal.Decimal `json:"income"`
	Cost             decimal.Decimal `json:"cost"`
	OperatingExpense decimal.Decimal `json:"operatingExpense"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	OperatingProfit  decimal.Decimal `json:"operatingProfit"`
	EstimatedTax     decimal.Decimal `json:"estimatedTax"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	GrossMarginPct   decimal.Decimal `json:"grossMarginPct"` // 0 when income is 0
	NetMarginPct     decimal.Decimal `json:"netMarginPct"`
}

// BalanceSheet is the whole-ledger position, recomputed from scratch on
// every call by folding all entries under the normal-side rule.
type BalanceSheet struct {
	Assets      decimal.Decimal            `json:"assets"`
	Liabilities decimal.Decimal            `json:"liabilities"`
	Equity      decimal.Decimal            `json:"equity"`
	IsBalanced  bool                       `json:"isBalanced"`
	Balances    map[string]decimal.Decimal `json:"balances"` // account code -> signed balance
}

// CashFlow is the period movement over the designated cash accounts.
type CashFlow struct {
	Period  Period          `json:"period"`
	CashIn  decimal.Decimal `json:"cashIn"`
	CashOut decimal.Decimal `json:"cashOut"`
	NetCash decimal.Decimal `json:"netCash"`
}

// TaxSummary aggregates the period's tax liabilities plus the estimated
// turnover tax.
type TaxSummary struct {
	Period      Period          `json:"period"`
	SalesTax    decimal.Decimal `json:"salesTax"`
	Withholding decimal.Decimal `json:"withholding"`
	TurnoverTax decimal.Decimal `json:"turnoverTax"`
	Total       decimal.Decimal `json:"total"`
}
