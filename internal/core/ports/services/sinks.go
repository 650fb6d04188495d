package services

import (
	"context"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
)

// AlertNotifier pushes financial alerts to the external notification
// collaborator. Display and channel policy live on the other side of this
// boundary.
type AlertNotifier interface {
	Push(ctx context.Context, companyID string, alert domain.FinancialAlert) error
}

// DiagnosticsSink receives failure reports (context tag, message and the
// offending payload) decoupled from control flow. Reporting must never
// replace error propagation.
type DiagnosticsSink interface {
	Report(ctx context.Context, companyID string, tag string, message string, payload any)
}
