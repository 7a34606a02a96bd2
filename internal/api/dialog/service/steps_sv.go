package dialogService

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"FinancasBot/internal/api/dialog"
	"FinancasBot/internal/entity"
	"FinancasBot/pkg/money"
)

// HandleReply applies one free-text reply to the user's current step. Invalid
// input re-prompts without changing the step; reaching the terminal step
// persists the drafted transaction(s) and destroys the session regardless of
// how many writes succeeded.
func (s *dialogService) HandleReply(ctx context.Context, userID, body string) (string, error) {
	session, ok := s.store.Get(userID)
	if !ok {
		return "", dialog.ErrNoActiveSession
	}

	s.store.Advance(userID, func(*entity.DialogSession) {})

	input := strings.TrimSpace(body)

	switch session.Step {
	case entity.StepAwaitingType:
		return s.handleTypeStep(ctx, session, input)
	case entity.StepAwaitingPaymentMethod:
		return s.handlePaymentMethodStep(ctx, session, input)
	case entity.StepAwaitingInstallments:
		return s.handleInstallmentsStep(ctx, session, input)
	case entity.StepAwaitingCategory:
		return s.handleCategoryStep(ctx, session, input)
	case entity.StepAwaitingValue:
		return s.handleValueStep(ctx, session, input)
	default:
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"step":    session.Step.String(),
		}).Error("Dialog session in unknown step, destroying it")
		s.store.Delete(userID)
		return msgInternalError, nil
	}
}

func (s *dialogService) handleTypeStep(ctx context.Context, session entity.DialogSession, input string) (string, error) {
	switch input {
	case "1":
		if len(s.options.PaymentMethods) == 0 {
			s.store.Delete(session.UserID)
			return msgConfigMissing, dialog.ErrEmptyOptionList
		}

		s.store.Advance(session.UserID, func(current *entity.DialogSession) {
			current.Draft.Type = entity.TransactionTypeExpense
			current.Step = entity.StepAwaitingPaymentMethod
		})
		return promptPaymentMethods(s.options.PaymentMethods), nil

	case "2":
		if len(s.options.IncomeSources) == 0 {
			s.store.Delete(session.UserID)
			return msgConfigMissing, dialog.ErrEmptyOptionList
		}

		s.store.Advance(session.UserID, func(current *entity.DialogSession) {
			current.Draft.Type = entity.TransactionTypeIncome
			current.Step = entity.StepAwaitingCategory
		})
		return promptIncomeSources(s.options.IncomeSources), nil

	default:
		return msgInvalidType, nil
	}
}

func (s *dialogService) handlePaymentMethodStep(ctx context.Context, session entity.DialogSession, input string) (string, error) {
	idx, ok := parseMenuIndex(input, len(s.options.PaymentMethods))
	if !ok {
		return msgInvalidOption, nil
	}

	method := s.options.PaymentMethods[idx]

	if strings.Contains(strings.ToLower(method), "parcelado") {
		s.store.Advance(session.UserID, func(current *entity.DialogSession) {
			current.Draft.PaymentMethod = method
			current.Step = entity.StepAwaitingInstallments
		})
		return promptInstallments, nil
	}

	if len(s.options.ExpenseCategories) == 0 {
		s.store.Delete(session.UserID)
		return msgConfigMissing, dialog.ErrEmptyOptionList
	}

	session.Draft.PaymentMethod = method
	s.store.Advance(session.UserID, func(current *entity.DialogSession) {
		current.Draft.PaymentMethod = method
		current.Step = entity.StepAwaitingCategory
	})

	return promptCategoryMenu(s.options.ExpenseCategories, session.Draft), nil
}

func (s *dialogService) handleInstallmentsStep(ctx context.Context, session entity.DialogSession, input string) (string, error) {
	count, err := strconv.Atoi(input)
	if err != nil || count < 1 || count > 99 {
		return msgInvalidInstallments, nil
	}

	if len(s.options.ExpenseCategories) == 0 {
		s.store.Delete(session.UserID)
		return msgConfigMissing, dialog.ErrEmptyOptionList
	}

	session.Draft.InstallmentCount = count
	s.store.Advance(session.UserID, func(current *entity.DialogSession) {
		current.Draft.InstallmentCount = count
		current.Step = entity.StepAwaitingCategory
	})

	return promptCategoryMenu(s.options.ExpenseCategories, session.Draft), nil
}

func (s *dialogService) handleCategoryStep(ctx context.Context, session entity.DialogSession, input string) (string, error) {
	categories := s.options.CategoriesFor(session.Draft.Type == entity.TransactionTypeExpense)
	if len(categories) == 0 {
		s.store.Delete(session.UserID)
		return msgConfigMissing, dialog.ErrEmptyOptionList
	}

	idx, ok := parseMenuIndex(input, len(categories))
	if !ok {
		return msgInvalidOption, nil
	}

	session.Draft.Category = categories[idx]
	s.store.Advance(session.UserID, func(current *entity.DialogSession) {
		current.Draft.Category = categories[idx]
		current.Step = entity.StepAwaitingValue
	})

	return promptValue(session.Draft), nil
}

func (s *dialogService) handleValueStep(ctx context.Context, session entity.DialogSession, input string) (string, error) {
	value, err := money.ParseAmount(input)
	if err != nil {
		return msgInvalidValue, nil
	}

	session.Draft.Amount = value.InexactFloat64()

	// Terminal step: the session is destroyed no matter how the writes go.
	defer s.store.Delete(session.UserID)

	if session.Draft.InstallmentCount > 1 {
		return s.finishInstallmentPlan(ctx, session)
	}
	return s.finishSingleTransaction(ctx, session)
}

func (s *dialogService) finishSingleTransaction(ctx context.Context, session entity.DialogSession) (string, error) {
	transaction := entity.Transaction{
		Type:           session.Draft.Type,
		PaymentMethod:  session.Draft.PaymentMethod,
		Category:       session.Draft.Category,
		Amount:         session.Draft.Amount,
		User:           session.Draft.User,
		OccurredAt:     session.Draft.OccurredAt,
		ReferenceMonth: session.Draft.ReferenceMonth,
	}

	if err := s.ledgerService.CreateTransaction(ctx, transaction); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"error":   err.Error(),
		}).Error("Failed to persist transaction from dialog")
		return singleSaveFailedMessage(err.Error()), nil
	}

	return singleSavedMessage(transaction), nil
}

func (s *dialogService) finishInstallmentPlan(ctx context.Context, session entity.DialogSession) (string, error) {
	result, err := s.ledgerService.CreateInstallmentPlan(ctx, session.Draft)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"error":   err.Error(),
		}).Error("Failed to persist installment plan from dialog")
		return singleSaveFailedMessage(err.Error()), nil
	}

	return installmentPlanMessage(result, session.Draft), nil
}

func parseMenuIndex(input string, size int) (int, bool) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}

	idx := n - 1
	if idx < 0 || idx >= size {
		return 0, false
	}
	return idx, true
}
