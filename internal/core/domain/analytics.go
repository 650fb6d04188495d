package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertSeverity grades a financial alert.
type AlertSeverity string

const (
	AlertCritical AlertSeverity = "CRITICAL"
	AlertWarning  AlertSeverity = "WARNING"
)

// FinancialAlert is emitted by the analytics layer, pushed to the
// notification sink and persisted as an immutable audit record with the
// month that triggered it.
type FinancialAlert struct {
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	Month     string        `json:"month"`
	CreatedAt time.Time     `json:"createdAt"`
}

// CashFlowHorizon is one 30/60/90-day projection point.
type CashFlowHorizon struct {
	Days    int             `json:"days"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlowProjection extrapolates the trailing three months of real cash
// movement over the open receivables/payables.
type CashFlowProjection struct {
	Horizons        []CashFlowHorizon `json:"horizons"`
	AvgIn           decimal.Decimal   `json:"avgIn"`
	AvgOut          decimal.Decimal   `json:"avgOut"`
	CurrentNet      decimal.Decimal   `json:"currentNet"`
	OpenReceivables decimal.Decimal   `json:"openReceivables"`
	OpenPayables    decimal.Decimal   `json:"openPayables"`
}

// RiskBucket is the qualitative band a client risk score falls into.
type RiskBucket string

const (
	RiskLow      RiskBucket = "LOW"
	RiskMedium   RiskBucket = "MEDIUM"
	RiskHigh     RiskBucket = "HIGH"
	RiskCritical RiskBucket = "CRITICAL"
)

// ClientRisk scores a counterparty's payment behaviour in [0,100];
// 100 is a client that has never gone overdue.
type ClientRisk struct {
	Client         string          `json:"client"`
	Score          int             `json:"score"`
	Bucket         RiskBucket      `json:"bucket"`
	OverdueRatePct decimal.Decimal `json:"overdueRatePct"`
	AvgOverdueDays decimal.Decimal `json:"avgOverdueDays"`
	TotalBilled    decimal.Decimal `json:"totalBilled"`
}

// ClientProfitability aggregates income and attributable costs per client.
type ClientProfitability struct {
	Client    string          `json:"client"`
	Income    decimal.Decimal `json:"income"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	MarginPct decimal.Decimal `json:"marginPct"`
	Sales     int             `json:"sales"`
}

// ScenarioParams are the what-if deltas applied to the current month.
type ScenarioParams struct {
	IncomePct    decimal.Decimal `json:"incomePct"`
	CostPct      decimal.Decimal `json:"costPct"`
	ExpensePct   decimal.Decimal `json:"expensePct"`
	NewHeadcount int             `json:"newHeadcount"`
	UnitSalary   decimal.Decimal `json:"unitSalary"` // zero: DefaultUnitSalary
}

// DefaultUnitSalary is the assumed monthly cost of one additional hire.
var DefaultUnitSalary = decimal.NewFromInt(4500000)

// ScenarioFigures is one side (base or projected) of a simulation.
type ScenarioFigures struct {
	Income    decimal.Decimal `json:"income"`
	Cost      decimal.Decimal `json:"cost"`
	Expense   decimal.Decimal `json:"expense"`
	NetProfit decimal.Decimal `json:"netProfit"`
	CashFlow  decimal.Decimal `json:"cashFlow"`
}

// ScenarioRisk classifies the simulated outcome.
type ScenarioRisk string

const (
	ScenarioRiskLow    ScenarioRisk = "LOW"
	ScenarioRiskMedium ScenarioRisk = "MEDIUM"
	ScenarioRiskHigh   ScenarioRisk = "HIGH"
)

// ScenarioResult compares the current month against the simulated one.
// The projected net profit is approximated as 70% of projected operating
// profit rather than a full tax recompute.
type ScenarioResult struct {
	Base      ScenarioFigures `json:"base"`
	Projected ScenarioFigures `json:"projected"`
	Delta     ScenarioFigures `json:"delta"`
	Risk      ScenarioRisk    `json:"risk"`
}

// PreCloseTask is one item of the assisted month-end closing checklist.
type PreCloseTask struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// ExecutiveKPIs is the dashboard summary for a period.
type ExecutiveKPIs struct {
	EBITDA            decimal.Decimal `json:"ebitda"`
	GrossMarginPct    decimal.Decimal `json:"grossMarginPct"`
	NetMarginPct      decimal.Decimal `json:"netMarginPct"`
	ReceivableDays    int             `json:"receivableDays"`
	AvgCollectionDays int             `json:"avgCollectionDays"`
	Liquidity         decimal.Decimal `json:"liquidity"`
	LeveragePct       decimal.Decimal `json:"leveragePct"`
	Income            decimal.Decimal `json:"income"`
	Cost              decimal.Decimal `json:"cost"`
	Expense           decimal.Decimal `json:"expense"`
	NetProfit         decimal.Decimal `json:"netProfit"`
}
