package dto

import (
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SimulateScenarioRequest is the what-if input. Percentages are deltas over
// the current month, bounded to keep the simulation meaningful.
type SimulateScenarioRequest struct {
	IncomePct    decimal.Decimal `json:"incomePct" binding:"required"`
	CostPct      decimal.Decimal `json:"costPct"`
	ExpensePct   decimal.Decimal `json:"expensePct"`
	NewHeadcount int             `json:"newHeadcount" binding:"gte=0,lte=100"`
	UnitSalary   decimal.Decimal `json:"unitSalary"`
}

// ToParams converts the request into domain scenario parameters.
func (r SimulateScenarioRequest) ToParams() domain.ScenarioParams {
	return domain.ScenarioParams{
		IncomePct:    r.IncomePct,
		CostPct:      r.CostPct,
		ExpensePct:   r.ExpensePct,
		NewHeadcount: r.NewHeadcount,
		UnitSalary:   r.UnitSalary,
	}
}
