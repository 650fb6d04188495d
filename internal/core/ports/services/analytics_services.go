package services

import (
	"context"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
)

// AnalyticsSvcFacade builds financial intelligence on top of the ledger
// reader and the receivables tracker. Alert evaluation runs when a statement
// is rendered, never on a timer.
type AnalyticsSvcFacade interface {
	ProjectCashFlow(ctx context.Context, companyID string) (*domain.CashFlowProjection, error)

	// CheckFinancialAlerts evaluates the current month's alert conditions,
	// persists the firing ones as a single month batch and pushes them to
	// the notification sink.
	CheckFinancialAlerts(ctx context.Context, companyID string) ([]domain.FinancialAlert, error)

	// ScoreClientRisk returns every counterparty scored in [0,100],
	// ascending (worst payer first).
	ScoreClientRisk(ctx context.Context, companyID string) ([]domain.ClientRisk, error)

	// ClientProfitability aggregates income/cost per client, best margin first.
	ClientProfitability(ctx context.Context, companyID string) ([]domain.ClientProfitability, error)

	SimulateScenario(ctx context.Context, companyID string, params domain.ScenarioParams) (*domain.ScenarioResult, error)

	// PreCloseChecklist lists what stands between the company and a clean
	// month-end close.
	PreCloseChecklist(ctx context.Context, companyID string, period domain.Period) ([]domain.PreCloseTask, error)

	ExecutiveKPIs(ctx context.Context, companyID string, period domain.Period) (*domain.ExecutiveKPIs, error)
}
