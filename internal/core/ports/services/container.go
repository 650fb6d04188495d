package services

// ServiceContainer bundles every service facade handed to the transport
// layer.
type ServiceContainer struct {
	Journal     JournalSvcFacade
	Ledger      LedgerSvcFacade
	Receivables ReceivableSvcFacade
	Analytics   AnalyticsSvcFacade
}
