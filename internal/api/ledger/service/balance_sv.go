package ledgerService

import (
	"errors"
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"FinancasBot/internal/api/ledger"
	"FinancasBot/internal/entity"
	contextPkg "FinancasBot/pkg/context"
	redisPkg "FinancasBot/pkg/redis"
)

const (
	balanceCacheKeyPrefix = "saldo:"
	balanceCacheTTL       = 5 * time.Minute
)

func (s *ledgerService) MonthlyBalance(ctx context.Context, referenceMonth string) (entity.MonthlyBalance, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := time.Parse(entity.ReferenceMonthLayout, referenceMonth); err != nil {
		return entity.MonthlyBalance{}, ledger.ErrInvalidReferenceMonth
	}

	if cached, ok := s.cachedBalance(ctx, referenceMonth); ok {
		return cached, nil
	}

	repo, err := s.ledgerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.MonthlyBalance{}, err
	}

	transactions, err := repo.Transaction.GetByReferenceMonth(ctx, referenceMonth)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"month":      referenceMonth,
		}).Error("Failed to fetch transactions for balance")
		return entity.MonthlyBalance{}, err
	}

	balance := AggregateMonthly(referenceMonth, transactions)

	s.storeBalance(ctx, referenceMonth, balance)

	return balance, nil
}

// AggregateMonthly reduces one month's transactions to totals, counts and
// net balance. Malformed amounts (NaN, Inf) count toward the per-type totals
// as zero instead of poisoning the sums.
func AggregateMonthly(referenceMonth string, transactions []entity.Transaction) entity.MonthlyBalance {
	balance := entity.MonthlyBalance{ReferenceMonth: referenceMonth}

	for _, transaction := range transactions {
		amount := transaction.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}

		switch transaction.Type {
		case entity.TransactionTypeIncome:
			balance.TotalIncome += amount
			balance.IncomeCount++
		case entity.TransactionTypeExpense:
			balance.TotalExpense += amount
			balance.ExpenseCount++
		}
	}

	balance.Balance = balance.TotalIncome - balance.TotalExpense

	return balance
}

func (s *ledgerService) cachedBalance(ctx context.Context, referenceMonth string) (entity.MonthlyBalance, bool) {
	if s.cache == nil {
		return entity.MonthlyBalance{}, false
	}

	raw, err := s.cache.Get(ctx, balanceCacheKeyPrefix+referenceMonth)
	if err != nil {
		if !errors.Is(err, redisPkg.Nil) {
			s.log.WithFields(logrus.Fields{
				"month": referenceMonth,
				"error": err.Error(),
			}).Warn("Balance cache read failed, recomputing")
		}
		return entity.MonthlyBalance{}, false
	}

	var balance entity.MonthlyBalance
	if err := jsoniter.UnmarshalFromString(raw, &balance); err != nil {
		return entity.MonthlyBalance{}, false
	}

	return balance, true
}

func (s *ledgerService) storeBalance(ctx context.Context, referenceMonth string, balance entity.MonthlyBalance) {
	if s.cache == nil {
		return
	}

	raw, err := jsoniter.MarshalToString(balance)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, balanceCacheKeyPrefix+referenceMonth, raw, balanceCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"month": referenceMonth,
			"error": err.Error(),
		}).Warn("Balance cache write failed")
	}
}

func (s *ledgerService) invalidateBalanceCache(ctx context.Context, months ...string) {
	if s.cache == nil {
		return
	}

	seen := make(map[string]struct{}, len(months))
	for _, month := range months {
		if _, done := seen[month]; done {
			continue
		}
		seen[month] = struct{}{}

		if err := s.cache.Delete(ctx, balanceCacheKeyPrefix+month); err != nil {
			s.log.WithFields(logrus.Fields{
				"month": month,
				"error": err.Error(),
			}).Warn("Balance cache invalidation failed")
		}
	}
}
