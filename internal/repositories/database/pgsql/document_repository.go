package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portsrepo "github.com/gestium-IO/gestium-enterprise/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSaleDocumentRepository reads sale documents written by the sales
// module. The ledger side is read-only over this table.
type PgxSaleDocumentRepository struct {
	BaseRepository
}

func newPgxSaleDocumentRepository(pool *pgxpool.Pool) portsrepo.SaleDocumentRepository {
	return &PgxSaleDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleDocumentRepository = (*PgxSaleDocumentRepository)(nil)

func scanSale(row pgx.CollectableRow) (domain.SaleDocument, error) {
	var (
		sale   domain.SaleDocument
		status string
	)
	err := row.Scan(
		&sale.ID,
		&sale.CompanyID,
		&sale.Number,
		&sale.Client,
		&status,
		&sale.Total,
		&sale.Subtotal,
		&sale.Tax,
		&sale.IssuedAt,
		&sale.DueDate,
		&sale.IsSettled,
		&sale.SettledAt,
		&sale.IsDeleted,
	)
	sale.Status = domain.SaleStatus(status)
	return sale, err
}

// ListConverted implements portsrepo.SaleDocumentRepository.
func (r *PgxSaleDocumentRepository) ListConverted(ctx context.Context, companyID string, since time.Time, limit int) ([]domain.SaleDocument, error) {
	query := `
		SELECT sale_id, company_id, number, client, status, total, subtotal, tax,
		       issued_at, due_date, is_settled, settled_at, is_deleted
		FROM sale_documents
		WHERE company_id = $1 AND status = $2 AND NOT is_deleted
		  AND ($3::timestamptz IS NULL OR issued_at >= $3)
		ORDER BY issued_at DESC
		LIMIT $4;
	`
	var sinceArg *time.Time
	if !since.IsZero() {
		sinceArg = &since
	}
	rows, err := r.Pool.Query(ctx, query, companyID, string(domain.SaleConverted), sinceArg, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query sale documents: %v", apperrors.ErrStoreUnavailable, err)
	}
	sales, err := pgx.CollectRows(rows, scanSale)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan sale documents: %v", apperrors.ErrStoreUnavailable, err)
	}
	return sales, nil
}

// PgxExpenseDocumentRepository reads expense documents written by the
// expense module.
type PgxExpenseDocumentRepository struct {
	BaseRepository
}

func newPgxExpenseDocumentRepository(pool *pgxpool.Pool) portsrepo.ExpenseDocumentRepository {
	return &PgxExpenseDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseDocumentRepository = (*PgxExpenseDocumentRepository)(nil)

func scanExpense(row pgx.CollectableRow) (domain.ExpenseDocument, error) {
	var exp domain.ExpenseDocument
	err := row.Scan(
		&exp.ID,
		&exp.CompanyID,
		&exp.Category,
		&exp.Description,
		&exp.Supplier,
		&exp.Amount,
		&exp.IssuedAt,
		&exp.IsSettled,
		&exp.IsDeleted,
	)
	return exp, err
}

func (r *PgxExpenseDocumentRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]domain.ExpenseDocument, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query expense documents: %v", apperrors.ErrStoreUnavailable, err)
	}
	expenses, err := pgx.CollectRows(rows, scanExpense)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan expense documents: %v", apperrors.ErrStoreUnavailable, err)
	}
	return expenses, nil
}

// ListExpenses implements portsrepo.ExpenseDocumentRepository.
func (r *PgxExpenseDocumentRepository) ListExpenses(ctx context.Context, companyID string, from, to time.Time, limit int) ([]domain.ExpenseDocument, error) {
	query := `
		SELECT expense_id, company_id, category, description, supplier, amount,
		       issued_at, is_settled, is_deleted
		FROM expense_documents
		WHERE company_id = $1 AND NOT is_deleted
		  AND ($2::timestamptz IS NULL OR issued_at >= $2)
		  AND issued_at <= $3
		ORDER BY issued_at DESC
		LIMIT $4;
	`
	var fromArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	return r.queryExpenses(ctx, query, companyID, fromArg, to, limit)
}

// ListUnsettled implements portsrepo.ExpenseDocumentRepository.
func (r *PgxExpenseDocumentRepository) ListUnsettled(ctx context.Context, companyID string, since time.Time, limit int) ([]domain.ExpenseDocument, error) {
	query := `
		SELECT expense_id, company_id, category, description, supplier, amount,
		       issued_at, is_settled, is_deleted
		FROM expense_documents
		WHERE company_id = $1 AND NOT is_deleted AND NOT is_settled
		  AND ($2::timestamptz IS NULL OR issued_at >= $2)
		ORDER BY issued_at DESC
		LIMIT $3;
	`
	var sinceArg *time.Time
	if !since.IsZero() {
		sinceArg = &since
	}
	return r.queryExpenses(ctx, query, companyID, sinceArg, limit)
}
