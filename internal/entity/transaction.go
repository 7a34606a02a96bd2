package entity

import (
	"math"
	"time"

	"FinancasBot/internal/api/ledger"
)

type TransactionType string

const (
	TransactionTypeExpense TransactionType = "GASTO"
	TransactionTypeIncome  TransactionType = "ENTRADA"
)

func IsValidTransactionType(t string) bool {
	switch TransactionType(t) {
	case TransactionTypeExpense, TransactionTypeIncome:
		return true
	default:
		return false
	}
}

const ReferenceMonthLayout = "2006-01"

// ReferenceMonthOf derives the "YYYY-MM" aggregation key from a transaction
// date. It must always be computed from the effective date of the record
// itself; installments of one purchase land in consecutive months.
func ReferenceMonthOf(t time.Time) string {
	return t.Format(ReferenceMonthLayout)
}

// Transaction is immutable once created. PaymentMethod is set only for
// expenses; InstallmentCount/InstallmentIndex only for multi-installment
// expenses (1-based).
type Transaction struct {
	ID               string          `json:"id"`
	Type             TransactionType `json:"tipo"`
	PaymentMethod    string          `json:"forma_pagamento,omitempty"`
	Category         string          `json:"categoria"`
	Amount           float64         `json:"valor"`
	InstallmentCount int             `json:"parcelas,omitempty"`
	InstallmentIndex int             `json:"parcela_atual,omitempty"`
	Description      string          `json:"descricao,omitempty"`
	User             string          `json:"usuario"`
	OccurredAt       time.Time       `json:"data"`
	ReferenceMonth   string          `json:"mes_referencia"`
}

func (t *Transaction) Validate() error {
	if !IsValidTransactionType(string(t.Type)) {
		return ledger.ErrInvalidTransactionType
	}

	if t.Category == "" {
		return ledger.ErrInvalidCategory
	}

	if t.Amount <= 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ledger.ErrInvalidAmount
	}

	if t.Type == TransactionTypeIncome && t.PaymentMethod != "" {
		return ledger.ErrInvalidPaymentMethod
	}

	if t.InstallmentCount > 0 {
		if t.Type != TransactionTypeExpense {
			return ledger.ErrInvalidInstallments
		}
		if t.InstallmentIndex < 1 || t.InstallmentIndex > t.InstallmentCount {
			return ledger.ErrInvalidInstallments
		}
	}

	if t.ReferenceMonth != ReferenceMonthOf(t.OccurredAt) {
		return ledger.ErrReferenceMonthMismatch
	}

	return nil
}

// MonthlyBalance is derived, never stored. Counts let callers distinguish
// "no data this month" from a balance that happens to be zero.
type MonthlyBalance struct {
	ReferenceMonth string  `json:"mes"`
	TotalIncome    float64 `json:"total_entradas"`
	TotalExpense   float64 `json:"total_gastos"`
	Balance        float64 `json:"saldo"`
	IncomeCount    int     `json:"count_entradas"`
	ExpenseCount   int     `json:"count_gastos"`
}
