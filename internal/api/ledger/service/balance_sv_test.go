package ledgerService_test

import (
	"context"
	"math"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinancasBot/internal/api/ledger"
	ledgerService "FinancasBot/internal/api/ledger/service"
	"FinancasBot/internal/entity"
)

func TestAggregateMonthly_Empty(t *testing.T) {
	balance := ledgerService.AggregateMonthly("2025-03", nil)

	assert.Equal(t, "2025-03", balance.ReferenceMonth)
	assert.Zero(t, balance.TotalIncome)
	assert.Zero(t, balance.TotalExpense)
	assert.Zero(t, balance.Balance)
	assert.Zero(t, balance.IncomeCount)
	assert.Zero(t, balance.ExpenseCount)
}

func TestAggregateMonthly(t *testing.T) {
	transactions := []entity.Transaction{
		{Type: entity.TransactionTypeIncome, Amount: 100.00},
		{Type: entity.TransactionTypeExpense, Amount: 40.00},
	}

	balance := ledgerService.AggregateMonthly("2025-03", transactions)

	assert.InDelta(t, 100.00, balance.TotalIncome, 0.001)
	assert.InDelta(t, 40.00, balance.TotalExpense, 0.001)
	assert.InDelta(t, 60.00, balance.Balance, 0.001)
	assert.Equal(t, 1, balance.IncomeCount)
	assert.Equal(t, 1, balance.ExpenseCount)
}

func TestAggregateMonthly_MalformedAmounts(t *testing.T) {
	transactions := []entity.Transaction{
		{Type: entity.TransactionTypeIncome, Amount: 100.00},
		{Type: entity.TransactionTypeIncome, Amount: math.NaN()},
		{Type: entity.TransactionTypeExpense, Amount: math.Inf(1)},
		{Type: entity.TransactionTypeExpense, Amount: 25.00},
	}

	balance := ledgerService.AggregateMonthly("2025-03", transactions)

	assert.InDelta(t, 100.00, balance.TotalIncome, 0.001)
	assert.InDelta(t, 25.00, balance.TotalExpense, 0.001)
	assert.InDelta(t, 75.00, balance.Balance, 0.001)
	assert.Equal(t, 2, balance.IncomeCount)
	assert.Equal(t, 2, balance.ExpenseCount)
}

func TestMonthlyBalance(t *testing.T) {
	repo := &fakeRepository{
		byMonth: map[string][]entity.Transaction{
			"2025-03": {
				{Type: entity.TransactionTypeIncome, Amount: 3000.00},
				{Type: entity.TransactionTypeExpense, Amount: 150.50},
				{Type: entity.TransactionTypeExpense, Amount: 49.50},
			},
		},
	}
	cache := newFakeCache()
	service := newService(repo, cache)

	balance, err := service.MonthlyBalance(context.Background(), "2025-03")
	require.NoError(t, err)

	assert.InDelta(t, 3000.00, balance.TotalIncome, 0.001)
	assert.InDelta(t, 200.00, balance.TotalExpense, 0.001)
	assert.InDelta(t, 2800.00, balance.Balance, 0.001)
	assert.Equal(t, 1, balance.IncomeCount)
	assert.Equal(t, 2, balance.ExpenseCount)

	assert.Contains(t, cache.entries, "saldo:2025-03")
}

func TestMonthlyBalance_CacheHit(t *testing.T) {
	cached, err := jsoniter.MarshalToString(entity.MonthlyBalance{
		ReferenceMonth: "2025-03",
		TotalIncome:    500.00,
		Balance:        500.00,
		IncomeCount:    1,
	})
	require.NoError(t, err)

	cache := newFakeCache()
	cache.entries["saldo:2025-03"] = cached

	repo := &fakeRepository{queryErr: assert.AnError}
	service := newService(repo, cache)

	balance, err := service.MonthlyBalance(context.Background(), "2025-03")
	require.NoError(t, err)

	assert.InDelta(t, 500.00, balance.TotalIncome, 0.001)
	assert.Equal(t, 1, balance.IncomeCount)
}

func TestMonthlyBalance_InvalidMonth(t *testing.T) {
	service := newService(&fakeRepository{}, newFakeCache())

	_, err := service.MonthlyBalance(context.Background(), "2025-3")
	assert.ErrorIs(t, err, ledger.ErrInvalidReferenceMonth)
}

func TestMonthlyBalance_RepositoryError(t *testing.T) {
	repo := &fakeRepository{queryErr: assert.AnError}
	service := newService(repo, newFakeCache())

	_, err := service.MonthlyBalance(context.Background(), "2025-03")
	assert.ErrorIs(t, err, assert.AnError)
}
