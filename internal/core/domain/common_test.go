package domain_test

import (
	"testing"
	"time"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := domain.ParsePeriod("2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, time.March, p.Month)
	assert.Equal(t, "2026-03", p.String())

	_, err = domain.ParsePeriod("03-2026")
	assert.Error(t, err)
	_, err = domain.ParsePeriod("2026-13")
	assert.Error(t, err)
}

func TestPeriodBounds(t *testing.T) {
	p := domain.Period{Year: 2026, Month: time.February}
	start, end := p.Bounds()
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), end)

	assert.True(t, p.Contains(time.Date(2026, time.February, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodPrevious(t *testing.T) {
	p := domain.Period{Year: 2026, Month: time.January}
	prev := p.Previous(1)
	assert.Equal(t, domain.Period{Year: 2025, Month: time.December}, prev)
	assert.Equal(t, domain.Period{Year: 2025, Month: time.October}, p.Previous(3))
}

func TestExpenseAccountForCategory(t *testing.T) {
	assert.Equal(t, domain.AccountCostOfGoods, domain.ExpenseAccountForCategory("Materia Prima"))
	assert.Equal(t, domain.AccountPayroll, domain.ExpenseAccountForCategory("Nómina"))
	// Unknown categories land on the misc account.
	assert.Equal(t, domain.AccountMiscExpense, domain.ExpenseAccountForCategory("Imprevistos"))
}
