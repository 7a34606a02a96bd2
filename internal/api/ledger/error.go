package ledger

import "FinancasBot/pkg/response"

var (
	ErrInvalidTransactionType = response.NewError(400, "invalid transaction type")
	ErrInvalidCategory        = response.NewError(400, "invalid category")
	ErrInvalidAmount          = response.NewError(400, "invalid transaction amount")
	ErrInvalidPaymentMethod   = response.NewError(400, "payment method only applies to expenses")
	ErrInvalidInstallments    = response.NewError(400, "invalid installment numbering")
	ErrReferenceMonthMismatch = response.NewError(400, "reference month does not match transaction date")
	ErrInvalidReferenceMonth  = response.NewError(400, "reference month must be formatted YYYY-MM")
	ErrCreateTransaction      = response.NewError(500, "failed to save transaction")
)
