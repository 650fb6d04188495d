package services

import (
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
)

// NewServiceContainer wires the service graph. The ledger and receivables
// facades are built first since analytics composes over them.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.AlertNotifier, diagnostics portssvc.DiagnosticsSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Journal = NewJournalService(repos.JournalRepo, diagnostics)
	container.Ledger = NewLedgerService(repos.JournalRepo)
	container.Receivables = NewReceivableService(repos.SaleRepo, repos.ExpenseRepo)
	container.Analytics = NewAnalyticsService(
		container.Ledger,
		container.Receivables,
		repos.JournalRepo,
		repos.SaleRepo,
		repos.ExpenseRepo,
		repos.AlertRepo,
		notifier,
	)

	return container
}
