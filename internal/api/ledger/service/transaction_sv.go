package ledgerService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"FinancasBot/internal/api/ledger"
	"FinancasBot/internal/entity"
	contextPkg "FinancasBot/pkg/context"
)

func (s *ledgerService) CreateTransaction(ctx context.Context, transaction entity.Transaction) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.ledgerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if transaction.ID == "" {
		ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate ULID")
			return err
		}
		transaction.ID = ULID
	}

	if err := transaction.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid transaction data")
		return err
	}

	if err := repo.Transaction.Insert(ctx, transaction); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to insert transaction")
		return ledger.ErrCreateTransaction
	}

	s.invalidateBalanceCache(ctx, transaction.ReferenceMonth)

	return nil
}

// CreateInstallmentPlan splits the drafted expense into dated installments
// and persists each as its own transaction. A failed insert does not abort
// the remaining installments; the result reports how many were saved.
func (s *ledgerService) CreateInstallmentPlan(ctx context.Context, draft entity.TransactionDraft) (InstallmentPlanResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if draft.Type != entity.TransactionTypeExpense {
		return InstallmentPlanResult{}, ledger.ErrInvalidTransactionType
	}
	if draft.InstallmentCount < 1 || draft.InstallmentCount > 99 {
		return InstallmentPlanResult{}, ledger.ErrInvalidInstallments
	}
	if draft.Amount <= 0 {
		return InstallmentPlanResult{}, ledger.ErrInvalidAmount
	}

	repo, err := s.ledgerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return InstallmentPlanResult{}, err
	}

	installments := SplitInstallments(draft.Amount, draft.InstallmentCount, draft.OccurredAt)

	result := InstallmentPlanResult{
		Total:      draft.Amount,
		Count:      draft.InstallmentCount,
		BaseAmount: installments[0].Amount,
	}

	months := make([]string, 0, len(installments))

	for _, installment := range installments {
		ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate ULID for installment")
			continue
		}

		transaction := entity.Transaction{
			ID:               ULID,
			Type:             entity.TransactionTypeExpense,
			PaymentMethod:    draft.PaymentMethod,
			Category:         draft.Category,
			Amount:           installment.Amount,
			InstallmentCount: draft.InstallmentCount,
			InstallmentIndex: installment.Index,
			Description:      installmentDescription(installment.Index, draft.InstallmentCount),
			User:             draft.User,
			OccurredAt:       installment.OccurredAt,
			ReferenceMonth:   entity.ReferenceMonthOf(installment.OccurredAt),
		}

		if err := repo.Transaction.Insert(ctx, transaction); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"error":       err.Error(),
				"installment": installment.Index,
			}).Error("Failed to insert installment")
			continue
		}

		result.SavedCount++
		months = append(months, transaction.ReferenceMonth)
	}

	s.invalidateBalanceCache(ctx, months...)

	return result, nil
}

func (s *ledgerService) MonthlyTransactions(ctx context.Context, referenceMonth string) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := time.Parse(entity.ReferenceMonthLayout, referenceMonth); err != nil {
		return nil, ledger.ErrInvalidReferenceMonth
	}

	repo, err := s.ledgerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Transaction.GetByReferenceMonth(ctx, referenceMonth)
}
