package pgsql

import (
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo: newPgxJournalRepository(dbPool),
		SaleRepo:    newPgxSaleDocumentRepository(dbPool),
		ExpenseRepo: newPgxExpenseDocumentRepository(dbPool),
		AlertRepo:   newPgxAlertRepository(dbPool),
	}
}
