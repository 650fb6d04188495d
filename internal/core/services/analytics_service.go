package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const (
	trailingMonths   = 3
	maxClientDocs    = 1000
	monthEndAlertDay = 5 // days left in month that make pending sales tax urgent
)

var (
	// collectionDiscount haircuts projected inflows for uncollectible or
	// delayed receivables.
	collectionDiscount = decimal.NewFromFloat(0.7)
	// expenseAlertRatio fires when month expenses exceed this share of income.
	expenseAlertRatio = decimal.NewFromFloat(0.7)
	// netMarginAlertPct fires when the month's net margin drops below it.
	netMarginAlertPct = decimal.NewFromInt(-5)
	// netProfitApproxRate approximates after-tax profit in simulations.
	netProfitApproxRate = decimal.NewFromFloat(0.70)

	riskOverdueRateWeight = decimal.NewFromFloat(1.5)
	riskOverdueDaysWeight = decimal.NewFromFloat(0.5)
	riskOverdueDaysCap    = decimal.NewFromInt(60)
)

// analyticsService layers financial intelligence over the ledger reader and
// the receivables tracker. Every evaluation is triggered by a statement
// render; nothing here runs on a timer.
type analyticsService struct {
	BaseService
	ledger      portssvc.LedgerSvcFacade
	receivables portssvc.ReceivableSvcFacade
	journalRepo portsrepo.JournalRepository
	saleRepo    portsrepo.SaleDocumentRepository
	expenseRepo portsrepo.ExpenseDocumentRepository
	alertRepo   portsrepo.AlertRepository
	notifier    portssvc.AlertNotifier
	now         func() time.Time
}

// NewAnalyticsService creates the analytics layer.
func NewAnalyticsService(
	ledger portssvc.LedgerSvcFacade,
	receivables portssvc.ReceivableSvcFacade,
	journalRepo portsrepo.JournalRepository,
	saleRepo portsrepo.SaleDocumentRepository,
	expenseRepo portsrepo.ExpenseDocumentRepository,
	alertRepo portsrepo.AlertRepository,
	notifier portssvc.AlertNotifier,
) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		ledger:      ledger,
		receivables: receivables,
		journalRepo: journalRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		alertRepo:   alertRepo,
		notifier:    notifier,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

func (s *analyticsService) push(ctx context.Context, companyID string, alert domain.FinancialAlert) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Push(ctx, companyID, alert); err != nil {
		// Notification delivery must not fail the computation.
		s.LogWarn(ctx, "Failed to push financial alert", slog.String("error", err.Error()))
	}
}

// ProjectCashFlow implements portssvc.AnalyticsSvcFacade.
func (s *analyticsService) ProjectCashFlow(ctx context.Context, companyID string) (*domain.CashFlowProjection, error) {
	current := domain.PeriodOf(s.now())

	sumIn, sumOut := decimal.Zero, decimal.Zero
	for m := 1; m <= trailingMonths; m++ {
		cf, err := s.ledger.ComputeCashFlow(ctx, companyID, current.Previous(m))
		if err != nil {
			return nil, err
		}
		sumIn = sumIn.Add(cf.CashIn)
		sumOut = sumOut.Add(cf.CashOut)
	}
	months := decimal.NewFromInt(trailingMonths)
	avgIn := sumIn.Div(months)
	avgOut := sumOut.Div(months)

	currentFlow, err := s.ledger.ComputeCashFlow(ctx, companyID, current)
	if err != nil {
		return nil, err
	}

	recv, err := s.receivables.ListOpenReceivables(ctx, companyID)
	if err != nil {
		return nil, err
	}
	pay, err := s.receivables.ListOpenPayables(ctx, companyID)
	if err != nil {
		return nil, err
	}

	openRecv, openPay := decimal.Zero, decimal.Zero
	for _, r := range recv {
		openRecv = openRecv.Add(r.Amount)
	}
	for _, p := range pay {
		openPay = openPay.Add(p.Amount)
	}

	horizons := make([]domain.CashFlowHorizon, 0, 3)
	for _, days := range []int{30, 60, 90} {
		horizon := decimal.NewFromInt(int64(days / 30))
		inflow := currentFlow.NetCash.Add(openRecv).Add(avgIn.Mul(horizon).Mul(collectionDiscount)).Round(0)
		outflow := openPay.Add(avgOut.Mul(horizon)).Round(0)
		net := inflow.Sub(outflow)
		horizons = append(horizons, domain.CashFlowHorizon{
			Days:    days,
			Inflow:  inflow,
			Outflow: outflow,
			Net:     net,
		})

		if net.IsNegative() {
			s.push(ctx, companyID, domain.FinancialAlert{
				Severity:  domain.AlertCritical,
				Message:   fmt.Sprintf("Negative cash flow projected at %d days: %s", days, net.StringFixed(0)),
				Month:     current.String(),
				CreatedAt: s.now(),
			})
		}
	}

	return &domain.CashFlowProjection{
		Horizons:        horizons,
		AvgIn:           avgIn,
		AvgOut:          avgOut,
		CurrentNet:      currentFlow.NetCash,
		OpenReceivables: openRecv,
		OpenPayables:    openPay,
	}, nil
}

// CheckFinancialAlerts implements portssvc.AnalyticsSvcFacade. The four
// conditions are independent; every firing one yields an alert, and the
// fired set is persisted as a single batch tied to the month.
func (s *analyticsService) CheckFinancialAlerts(ctx context.Context, companyID string) ([]domain.FinancialAlert, error) {
	now := s.now()
	period := domain.PeriodOf(now)

	statement, err := s.ledger.ComputeIncomeStatement(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	taxes, err := s.ledger.ComputeTaxSummary(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	recv, err := s.receivables.ListOpenReceivables(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var alerts []domain.FinancialAlert
	add := func(severity domain.AlertSeverity, msg string) {
		alerts = append(alerts, domain.FinancialAlert{
			Severity:  severity,
			Message:   msg,
			Month:     period.String(),
			CreatedAt: now,
		})
	}

	// Negative net margin.
	if statement.NetMarginPct.LessThan(netMarginAlertPct) {
		add(domain.AlertCritical, fmt.Sprintf("Negative net margin: %s%%", statement.NetMarginPct.StringFixed(1)))
	}

	// Overdue receivables, aggregated into a single alert.
	overdueCount := 0
	overdueTotal := decimal.Zero
	for _, r := range recv {
		if r.Status == domain.AgingOverdue {
			overdueCount++
			overdueTotal = overdueTotal.Add(r.Amount)
		}
	}
	if overdueCount > 0 {
		add(domain.AlertWarning, fmt.Sprintf("Overdue receivables: %d invoices totaling %s", overdueCount, overdueTotal.StringFixed(0)))
	}

	// Sales tax filing deadline at month end.
	_, monthEnd := period.Bounds()
	daysLeft := int(math.Ceil(monthEnd.Sub(now).Hours() / 24))
	if daysLeft <= monthEndAlertDay && taxes.SalesTax.IsPositive() {
		add(domain.AlertWarning, fmt.Sprintf("Sales tax to declare: %s — due in %d days", taxes.SalesTax.StringFixed(0), daysLeft))
	}

	// Expense documents eating the month's income.
	from, to := period.Bounds()
	expenses, err := s.expenseRepo.ListExpenses(ctx, companyID, from, to, maxPayableDocs)
	if err != nil {
		return nil, err
	}
	expenseTotal := decimal.Zero
	for _, e := range expenses {
		if !e.IsDeleted {
			expenseTotal = expenseTotal.Add(e.Amount)
		}
	}
	if len(expenses) > 0 && statement.Income.IsPositive() {
		ratio := expenseTotal.Div(statement.Income)
		if ratio.GreaterThan(expenseAlertRatio) {
			add(domain.AlertWarning, fmt.Sprintf("Expenses represent %s%% of month income", ratio.Mul(hundred).StringFixed(0)))
		}
	}

	if len(alerts) > 0 {
		if err := s.alertRepo.SaveAlertBatch(ctx, companyID, period.String(), alerts); err != nil {
			return nil, fmt.Errorf("failed to persist alert batch: %w", err)
		}
		for _, a := range alerts {
			s.push(ctx, companyID, a)
		}
	}

	s.LogInfo(ctx, "Financial alerts evaluated",
		slog.String("month", period.String()), slog.Int("fired", len(alerts)))
	return alerts, nil
}

// ScoreClientRisk implements portssvc.AnalyticsSvcFacade.
func (s *analyticsService) ScoreClientRisk(ctx context.Context, companyID string) ([]domain.ClientRisk, error) {
	sales, err := s.saleRepo.ListConverted(ctx, companyID, time.Time{}, maxClientDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to read sale documents: %w", err)
	}

	type clientStats struct {
		total       decimal.Decimal
		count       int
		overdue     int
		overdueDays decimal.Decimal
	}
	now := s.now()
	stats := make(map[string]*clientStats)
	for _, sale := range sales {
		if sale.Client == "" || sale.IsDeleted {
			continue
		}
		cs, ok := stats[sale.Client]
		if !ok {
			cs = &clientStats{total: decimal.Zero, overdueDays: decimal.Zero}
			stats[sale.Client] = cs
		}
		cs.total = cs.total.Add(sale.Total)
		cs.count++
		if !sale.IsSettled {
			due := DueDateOf(sale)
			if now.After(due) {
				days := now.Sub(due).Hours() / 24
				cs.overdue++
				cs.overdueDays = cs.overdueDays.Add(decimal.NewFromFloat(days))
			}
		}
	}

	risks := make([]domain.ClientRisk, 0, len(stats))
	for client, cs := range stats {
		overdueRate := decimal.Zero
		if cs.count > 0 {
			overdueRate = decimal.NewFromInt(int64(cs.overdue)).Div(decimal.NewFromInt(int64(cs.count))).Mul(hundred)
		}
		avgDays := decimal.Zero
		if cs.overdue > 0 {
			avgDays = cs.overdueDays.Div(decimal.NewFromInt(int64(cs.overdue)))
		}
		cappedDays := decimal.Min(avgDays, riskOverdueDaysCap)
		raw := hundred.Sub(overdueRate.Mul(riskOverdueRateWeight)).Sub(cappedDays.Mul(riskOverdueDaysWeight))
		score := int(raw.Round(0).IntPart())
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		var bucket domain.RiskBucket
		switch {
		case score >= 80:
			bucket = domain.RiskLow
		case score >= 60:
			bucket = domain.RiskMedium
		case score >= 40:
			bucket = domain.RiskHigh
		default:
			bucket = domain.RiskCritical
		}

		risks = append(risks, domain.ClientRisk{
			Client:         client,
			Score:          score,
			Bucket:         bucket,
			OverdueRatePct: overdueRate,
			AvgOverdueDays: avgDays,
			TotalBilled:    cs.total,
		})
	}

	// Worst payers first.
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Score != risks[j].Score {
			return risks[i].Score < risks[j].Score
		}
		return risks[i].Client < risks[j].Client
	})
	return risks, nil
}

// ClientProfitability implements portssvc.AnalyticsSvcFacade. Costs are
// attributed to a client when the expense names it as counterparty.
func (s *analyticsService) ClientProfitability(ctx context.Context, companyID string) ([]domain.ClientProfitability, error) {
	sales, err := s.saleRepo.ListConverted(ctx, companyID, time.Time{}, maxClientDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to read sale documents: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, companyID, time.Time{}, s.now(), maxClientDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to read expense documents: %w", err)
	}

	type clientTotals struct {
		income decimal.Decimal
		cost   decimal.Decimal
		sales  int
	}
	totals := make(map[string]*clientTotals)
	for _, sale := range sales {
		if sale.Client == "" || sale.IsDeleted {
			continue
		}
		ct, ok := totals[sale.Client]
		if !ok {
			ct = &clientTotals{income: decimal.Zero, cost: decimal.Zero}
			totals[sale.Client] = ct
		}
		ct.income = ct.income.Add(sale.Total)
		ct.sales++
	}
	for _, exp := range expenses {
		if exp.IsDeleted {
			continue
		}
		if ct, ok := totals[exp.Supplier]; ok {
			ct.cost = ct.cost.Add(exp.Amount)
		}
	}

	result := make([]domain.ClientProfitability, 0, len(totals))
	for client, ct := range totals {
		profit := ct.income.Sub(ct.cost)
		margin := decimal.Zero
		if ct.income.IsPositive() {
			margin = profit.Div(ct.income).Mul(hundred)
		}
		result = append(result, domain.ClientProfitability{
			Client:    client,
			Income:    ct.income,
			Cost:      ct.cost,
			Profit:    profit,
			MarginPct: margin,
			Sales:     ct.sales,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].MarginPct.Equal(result[j].MarginPct) {
			return result[i].MarginPct.GreaterThan(result[j].MarginPct)
		}
		return result[i].Client < result[j].Client
	})
	return result, nil
}

// SimulateScenario implements portssvc.AnalyticsSvcFacade.
func (s *analyticsService) SimulateScenario(ctx context.Context, companyID string, params domain.ScenarioParams) (*domain.ScenarioResult, error) {
	period := domain.PeriodOf(s.now())

	statement, err := s.ledger.ComputeIncomeStatement(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	flow, err := s.ledger.ComputeCashFlow(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	unitSalary := params.UnitSalary
	if unitSalary.IsZero() {
		unitSalary = domain.DefaultUnitSalary
	}
	pct := func(base, delta decimal.Decimal) decimal.Decimal {
		return base.Mul(decimal.NewFromInt(1).Add(delta.Div(hundred)))
	}

	projIncome := pct(statement.Income, params.IncomePct)
	projCost := pct(statement.Cost, params.CostPct)
	projExpense := pct(statement.OperatingExpense, params.ExpensePct).
		Add(decimal.NewFromInt(int64(params.NewHeadcount)).Mul(unitSalary))

	projOperating := projIncome.Sub(projCost).Sub(projExpense)
	projNet := projOperating.Mul(netProfitApproxRate)
	projCash := flow.NetCash.
		Add(projIncome.Sub(statement.Income)).
		Sub(projExpense.Sub(statement.OperatingExpense))

	base := domain.ScenarioFigures{
		Income:    statement.Income,
		Cost:      statement.Cost,
		Expense:   statement.OperatingExpense,
		NetProfit: statement.NetProfit,
		CashFlow:  flow.NetCash,
	}
	projected := domain.ScenarioFigures{
		Income:    projIncome,
		Cost:      projCost,
		Expense:   projExpense,
		NetProfit: projNet,
		CashFlow:  projCash,
	}

	risk := domain.ScenarioRiskLow
	half := decimal.NewFromFloat(0.5)
	switch {
	case projNet.IsNegative():
		risk = domain.ScenarioRiskHigh
	case projNet.LessThan(statement.NetProfit.Mul(half)):
		risk = domain.ScenarioRiskMedium
	}

	return &domain.ScenarioResult{
		Base:      base,
		Projected: projected,
		Delta: domain.ScenarioFigures{
			Income:    projected.Income.Sub(base.Income),
			Cost:      projected.Cost.Sub(base.Cost),
			Expense:   projected.Expense.Sub(base.Expense),
			NetProfit: projected.NetProfit.Sub(base.NetProfit),
			CashFlow:  projected.CashFlow.Sub(base.CashFlow),
		},
		Risk: risk,
	}, nil
}

// PreCloseChecklist implements portssvc.AnalyticsSvcFacade.
func (s *analyticsService) PreCloseChecklist(ctx context.Context, companyID string, period domain.Period) ([]domain.PreCloseTask, error) {
	from, to := period.Bounds()
	entries, err := s.journalRepo.ListEntriesByDateRange(ctx, companyID, from, to, maxPeriodEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal for period %s: %w", period, err)
	}

	var tasks []domain.PreCloseTask
	unbalanced := 0
	for _, e := range entries {
		if !e.IsBalanced {
			unbalanced++
		}
	}
	switch {
	case unbalanced > 0:
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: fmt.Sprintf("%d unbalanced entries — review", unbalanced)})
	case len(entries) > 0:
		tasks = append(tasks, domain.PreCloseTask{OK: true, Message: fmt.Sprintf("All entries balanced (%d)", len(entries))})
	default:
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: "No movements in the period"})
	}

	taxes, err := s.ledger.ComputeTaxSummary(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	if taxes.SalesTax.IsPositive() {
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: fmt.Sprintf("Sales tax to declare: %s", taxes.SalesTax.StringFixed(0))})
	}
	if taxes.Withholding.IsPositive() {
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: fmt.Sprintf("Withholdings payable: %s", taxes.Withholding.StringFixed(0))})
	}

	recv, err := s.receivables.ListOpenReceivables(ctx, companyID)
	if err != nil {
		return nil, err
	}
	overdue := 0
	for _, r := range recv {
		if r.Status == domain.AgingOverdue {
			overdue++
		}
	}
	if overdue > 0 {
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: fmt.Sprintf("%d overdue invoices uncollected", overdue)})
	} else {
		tasks = append(tasks, domain.PreCloseTask{OK: true, Message: "No overdue receivables"})
	}

	balance, err := s.ledger.ComputeBalanceSheet(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if balance.IsBalanced {
		tasks = append(tasks, domain.PreCloseTask{OK: true, Message: "Balance sheet closes"})
	} else {
		diff := balance.Assets.Sub(balance.Liabilities.Add(balance.Equity)).Abs()
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: fmt.Sprintf("Balance sheet off by %s", diff.StringFixed(0))})
	}

	pay, err := s.receivables.ListOpenPayables(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(pay) > 0 {
		tasks = append(tasks, domain.PreCloseTask{OK: false, Message: fmt.Sprintf("%d expenses pending payment", len(pay))})
	}

	return tasks, nil
}

// ExecutiveKPIs implements portssvc.AnalyticsSvcFacade.
func (s *analyticsService) ExecutiveKPIs(ctx context.Context, companyID string, period domain.Period) (*domain.ExecutiveKPIs, error) {
	statement, err := s.ledger.ComputeIncomeStatement(ctx, companyID, period)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.ComputeBalanceSheet(ctx, companyID)
	if err != nil {
		return nil, err
	}
	recv, err := s.receivables.ListOpenReceivables(ctx, companyID)
	if err != nil {
		return nil, err
	}

	// Average days from issue to settlement over paid sales.
	sales, err := s.saleRepo.ListConverted(ctx, companyID, time.Time{}, maxClientDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to read sale documents: %w", err)
	}
	sumDays, paid := 0.0, 0
	for _, sale := range sales {
		if sale.IsSettled && sale.SettledAt != nil {
			sumDays += sale.SettledAt.Sub(sale.IssuedAt).Hours() / 24
			paid++
		}
	}
	avgCollectionDays := domain.DefaultPaymentTermDays
	if paid > 0 {
		avgCollectionDays = int(math.Round(sumDays / float64(paid)))
	}

	openRecv := decimal.Zero
	for _, r := range recv {
		openRecv = openRecv.Add(r.Amount)
	}
	receivableDays := 0
	if statement.Income.IsPositive() {
		receivableDays = int(openRecv.Div(statement.Income).Mul(decimal.NewFromInt(30)).Round(0).IntPart())
	}

	// EBITDA approximation: operating profit plus assumed depreciation share
	// of operating expenses.
	ebitda := statement.OperatingProfit.Add(statement.OperatingExpense.Mul(decimal.NewFromFloat(0.1)))

	liquidity := decimal.Zero
	leverage := decimal.Zero
	if balance.Assets.IsPositive() {
		liabilities := decimal.Max(balance.Liabilities, decimal.NewFromInt(1))
		liquidity = balance.Assets.Div(liabilities)
		leverage = balance.Liabilities.Div(balance.Assets).Mul(hundred)
	}

	return &domain.ExecutiveKPIs{
		EBITDA:            ebitda,
		GrossMarginPct:    statement.GrossMarginPct,
		NetMarginPct:      statement.NetMarginPct,
		ReceivableDays:    receivableDays,
		AvgCollectionDays: avgCollectionDays,
		Liquidity:         liquidity,
		LeveragePct:       leverage,
		Income:            statement.Income,
		Cost:              statement.Cost,
		Expense:           statement.OperatingExpense,
		NetProfit:         statement.NetProfit,
	}, nil
}
