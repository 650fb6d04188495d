// Package slogsink provides log-backed fallbacks for the notification and
// diagnostics ports, used when no broker is configured.
package slogsink

import (
	"context"
	"log/slog"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/gestium-IO/gestium-enterprise/internal/middleware"
)

// AlertLogger writes alerts to the request logger.
type AlertLogger struct{}

var _ portssvc.AlertNotifier = AlertLogger{}

// Push implements portssvc.AlertNotifier.
func (AlertLogger) Push(ctx context.Context, companyID string, alert domain.FinancialAlert) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.WarnContext(ctx, "Financial alert",
		slog.String("company_id", companyID),
		slog.String("severity", string(alert.Severity)),
		slog.String("month", alert.Month),
		slog.String("message", alert.Message),
	)
	return nil
}

// DiagnosticsLogger reports posting failures to the request logger. Posting
// failures must be visible somewhere even on a bare deployment.
type DiagnosticsLogger struct{}

var _ portssvc.DiagnosticsSink = DiagnosticsLogger{}

// Report implements portssvc.DiagnosticsSink.
func (DiagnosticsLogger) Report(ctx context.Context, companyID, tag, message string, payload any) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.ErrorContext(ctx, "Posting diagnostics report",
		slog.String("company_id", companyID),
		slog.String("tag", tag),
		slog.String("message", message),
		slog.Any("payload", payload),
	)
}
