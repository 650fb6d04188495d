package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/apperrors"
	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/gestium-IO/gestium-enterprise/internal/repositories/database/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "company-1"

func entry(eventID string, date time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		Date:            date,
		SourceEventType: domain.SaleConfirmed,
		SourceEventID:   eventID,
		TotalAmount:     decimal.NewFromInt(119000),
		IsBalanced:      true,
		CreatedAt:       date,
		CreatedBy:       "system",
	}
}

func TestAppendEntry_IdempotencyKey(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.AppendEntry(ctx, entry("sale-1", now)))

	err := store.AppendEntry(ctx, entry("sale-1", now))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	entries, err := store.ListEntries(ctx, companyID, 100)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAppendEntry_ManualEntriesExempt(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	manual := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		Date:            now,
		SourceEventType: domain.ManualEvent,
		IsManual:        true,
		CreatedAt:       now,
		CreatedBy:       "user-1",
	}
	require.NoError(t, store.AppendEntry(ctx, manual))
	manual.EntryID = uuid.NewString()
	require.NoError(t, store.AppendEntry(ctx, manual))

	entries, err := store.ListEntries(ctx, companyID, 100)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAppendEntry_ConcurrentSameEvent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.AppendEntry(ctx, entry("sale-race", now))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, winners, "exactly one writer must win")

	entries, err := store.ListEntries(ctx, companyID, 100)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFindBySourceEvent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	e := entry("sale-2", time.Now().UTC())
	require.NoError(t, store.AppendEntry(ctx, e))

	found, err := store.FindBySourceEvent(ctx, companyID, domain.SaleConfirmed, "sale-2")
	require.NoError(t, err)
	assert.Equal(t, e.EntryID, found.EntryID)

	_, err = store.FindBySourceEvent(ctx, companyID, domain.SaleConfirmed, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = store.FindBySourceEvent(ctx, companyID, domain.PaymentReceived, "sale-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "event type is part of the key")
}

func TestListEntries_OrderingAndLimits(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of date order.
	require.NoError(t, store.AppendEntry(ctx, entry("e-3", base.AddDate(0, 0, 3))))
	require.NoError(t, store.AppendEntry(ctx, entry("e-1", base.AddDate(0, 0, 1))))
	require.NoError(t, store.AppendEntry(ctx, entry("e-2", base.AddDate(0, 0, 2))))

	asc, err := store.ListEntries(ctx, companyID, 100)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "e-1", asc[0].SourceEventID)
	assert.Equal(t, "e-3", asc[2].SourceEventID)

	desc, err := store.ListRecentEntries(ctx, companyID, 2)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "e-3", desc[0].SourceEventID)
	assert.Equal(t, "e-2", desc[1].SourceEventID)

	ranged, err := store.ListEntriesByDateRange(ctx, companyID, base.AddDate(0, 0, 2), base.AddDate(0, 0, 3), 100)
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	capped, err := store.ListEntries(ctx, companyID, 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestListEntries_TenantIsolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.AppendEntry(ctx, entry("sale-1", time.Now().UTC())))

	other, err := store.ListEntries(ctx, "company-2", 100)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSaleAndExpenseQueries(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	store.SeedSale(domain.SaleDocument{
		ID: "s1", CompanyID: companyID, Status: domain.SaleConverted,
		Total: decimal.NewFromInt(100), IssuedAt: now.AddDate(0, 0, -1),
	})
	store.SeedSale(domain.SaleDocument{
		ID: "s2", CompanyID: companyID, Status: domain.SaleDraft,
		Total: decimal.NewFromInt(100), IssuedAt: now,
	})
	store.SeedSale(domain.SaleDocument{
		ID: "s3", CompanyID: companyID, Status: domain.SaleConverted,
		Total: decimal.NewFromInt(100), IssuedAt: now, IsDeleted: true,
	})

	sales, err := store.ListConverted(ctx, companyID, time.Time{}, 100)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "s1", sales[0].ID)

	store.SeedExpense(domain.ExpenseDocument{
		ID: "g1", CompanyID: companyID, Amount: decimal.NewFromInt(10),
		IssuedAt: now.AddDate(0, 0, -2),
	})
	store.SeedExpense(domain.ExpenseDocument{
		ID: "g2", CompanyID: companyID, Amount: decimal.NewFromInt(10),
		IssuedAt: now, IsSettled: true,
	})

	unsettled, err := store.ListUnsettled(ctx, companyID, time.Time{}, 100)
	require.NoError(t, err)
	require.Len(t, unsettled, 1)
	assert.Equal(t, "g1", unsettled[0].ID)

	all, err := store.ListExpenses(ctx, companyID, time.Time{}, now, 100)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAlertBatches(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	batch := []domain.FinancialAlert{
		{Severity: domain.AlertCritical, Message: "Negative net margin", Month: "2026-03", CreatedAt: time.Now().UTC()},
		{Severity: domain.AlertWarning, Message: "Overdue receivables", Month: "2026-03", CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, store.SaveAlertBatch(ctx, companyID, "2026-03", batch))

	saved, err := store.ListAlertsByMonth(ctx, companyID, "2026-03")
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	otherMonth, err := store.ListAlertsByMonth(ctx, companyID, "2026-04")
	require.NoError(t, err)
	assert.Empty(t, otherMonth)
}
