package ledgerHandler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"FinancasBot/internal/api/ledger"
	"FinancasBot/internal/entity"
	contextPkg "FinancasBot/pkg/context"
	"FinancasBot/pkg/log"
	"FinancasBot/pkg/response"
)

func (h *LedgerHandler) GetMonthlyBalance(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing monthly balance request")

	var req ledger.MonthlyQuery
	if err := ctx.QueryParser(&req); err != nil {
		return h.handleError(ctx, requestID, err, "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed: " + err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	}

	month := req.Month
	if month == "" {
		month = entity.ReferenceMonthOf(time.Now())
	}

	balance, err := h.ledgerService.MonthlyBalance(c, month)
	if err != nil {
		return h.handleError(ctx, requestID, err, "monthly_balance")
	}

	return ctx.Status(fiber.StatusOK).JSON(balance)
}

func (h *LedgerHandler) GetMonthlyTransactions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing monthly transactions request")

	var req ledger.MonthlyQuery
	if err := ctx.QueryParser(&req); err != nil {
		return h.handleError(ctx, requestID, err, "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed: " + err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	}

	month := req.Month
	if month == "" {
		month = entity.ReferenceMonthOf(time.Now())
	}

	transactions, err := h.ledgerService.MonthlyTransactions(c, month)
	if err != nil {
		return h.handleError(ctx, requestID, err, "monthly_transactions")
	}

	resp := ledger.TransactionListResponse{
		ReferenceMonth: month,
		Transactions:   make([]ledger.TransactionResponse, 0, len(transactions)),
	}
	for _, transaction := range transactions {
		resp.Transactions = append(resp.Transactions, makeTransactionResponse(transaction))
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func makeTransactionResponse(transaction entity.Transaction) ledger.TransactionResponse {
	return ledger.TransactionResponse{
		ID:               transaction.ID,
		Type:             string(transaction.Type),
		PaymentMethod:    transaction.PaymentMethod,
		Category:         transaction.Category,
		Amount:           transaction.Amount,
		InstallmentCount: transaction.InstallmentCount,
		InstallmentIndex: transaction.InstallmentIndex,
		Description:      transaction.Description,
		User:             transaction.User,
		OccurredAt:       transaction.OccurredAt.Format(time.RFC3339),
		ReferenceMonth:   transaction.ReferenceMonth,
	}
}

func (h *LedgerHandler) handleError(ctx *fiber.Ctx, requestID string, err error, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       ctx.Path(),
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.log.WithFields(fields).Warn("Operation failed with error response")
		return ctx.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.log.WithFields(fields).Error("Unexpected error")
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}
