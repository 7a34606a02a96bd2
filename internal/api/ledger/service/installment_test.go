package ledgerService_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerService "FinancasBot/internal/api/ledger/service"
)

func TestSplitInstallments_SumEqualsTotal(t *testing.T) {
	origin := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		total float64
		count int
	}{
		{name: "even split", total: 300.00, count: 3},
		{name: "remainder on last", total: 100.00, count: 3},
		{name: "cents remainder", total: 1000.01, count: 7},
		{name: "single installment", total: 150.50, count: 1},
		{name: "max installments", total: 12345.67, count: 99},
		{name: "total smaller than count", total: 0.50, count: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installments := ledgerService.SplitInstallments(tt.total, tt.count, origin)
			require.Len(t, installments, tt.count)

			sum := 0.0
			for i, installment := range installments {
				assert.Equal(t, i+1, installment.Index)
				sum += installment.Amount
			}
			assert.InDelta(t, tt.total, sum, 0.001)

			if tt.count > 1 {
				base := installments[0].Amount
				for _, installment := range installments[:tt.count-1] {
					assert.InDelta(t, base, installment.Amount, 0.001)
				}
			}
		})
	}
}

func TestSplitInstallments_RemainderOnLast(t *testing.T) {
	installments := ledgerService.SplitInstallments(100.00, 3, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, installments, 3)

	assert.InDelta(t, 33.33, installments[0].Amount, 0.001)
	assert.InDelta(t, 33.33, installments[1].Amount, 0.001)
	assert.InDelta(t, 33.34, installments[2].Amount, 0.001)
}

func TestSplitInstallments_Dates(t *testing.T) {
	origin := time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)

	installments := ledgerService.SplitInstallments(400.00, 4, origin)
	require.Len(t, installments, 4)

	assert.Equal(t, origin, installments[0].OccurredAt)
	assert.Equal(t, time.Date(2025, time.April, 15, 9, 30, 0, 0, time.UTC), installments[1].OccurredAt)
	assert.Equal(t, time.Date(2025, time.May, 15, 9, 30, 0, 0, time.UTC), installments[2].OccurredAt)
	assert.Equal(t, time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC), installments[3].OccurredAt)
}

func TestSplitInstallments_MonthEndClamping(t *testing.T) {
	origin := time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)

	installments := ledgerService.SplitInstallments(500.00, 5, origin)
	require.Len(t, installments, 5)

	assert.Equal(t, time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC), installments[0].OccurredAt)
	assert.Equal(t, time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC), installments[1].OccurredAt)
	assert.Equal(t, time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC), installments[2].OccurredAt)
	assert.Equal(t, time.Date(2025, time.April, 30, 12, 0, 0, 0, time.UTC), installments[3].OccurredAt)
	assert.Equal(t, time.Date(2025, time.May, 31, 12, 0, 0, 0, time.UTC), installments[4].OccurredAt)
}

func TestSplitInstallments_LeapYearFebruary(t *testing.T) {
	origin := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	installments := ledgerService.SplitInstallments(200.00, 2, origin)
	require.Len(t, installments, 2)

	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), installments[1].OccurredAt)
}

func TestSplitInstallments_YearRollover(t *testing.T) {
	origin := time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)

	installments := ledgerService.SplitInstallments(300.00, 3, origin)
	require.Len(t, installments, 3)

	assert.Equal(t, time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC), installments[1].OccurredAt)
	assert.Equal(t, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), installments[2].OccurredAt)
}

func TestSplitInstallments_InvalidCount(t *testing.T) {
	assert.Nil(t, ledgerService.SplitInstallments(100.00, 0, time.Now()))
	assert.Nil(t, ledgerService.SplitInstallments(100.00, -3, time.Now()))
}

func TestSplitInstallments_NoNegativeAmounts(t *testing.T) {
	installments := ledgerService.SplitInstallments(0.01, 3, time.Now())
	require.Len(t, installments, 3)

	for _, installment := range installments {
		assert.False(t, math.Signbit(installment.Amount))
	}
}
