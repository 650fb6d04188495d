package repositories

// RepositoryProvider bundles every repository implementation a store backend
// offers, so backends stay swappable behind one constructor.
type RepositoryProvider struct {
	JournalRepo JournalRepository
	SaleRepo    SaleDocumentRepository
	ExpenseRepo ExpenseDocumentRepository
	AlertRepo   AlertRepository
}
