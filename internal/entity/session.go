package entity

import "time"

type DialogStep uint8

const (
	StepUnknown DialogStep = iota
	StepAwaitingType
	StepAwaitingPaymentMethod
	StepAwaitingInstallments
	StepAwaitingCategory
	StepAwaitingValue
)

var dialogStepMap = map[DialogStep]string{
	StepAwaitingType:          "awaiting_type",
	StepAwaitingPaymentMethod: "awaiting_forma_pagamento",
	StepAwaitingInstallments:  "awaiting_parcelas",
	StepAwaitingCategory:      "awaiting_categoria",
	StepAwaitingValue:         "awaiting_value",
}

func (s DialogStep) String() string {
	if name, ok := dialogStepMap[s]; ok {
		return name
	}
	return "unknown"
}

// TransactionDraft is the partially-filled transaction a dialog session
// builds up. Fields are populated monotonically as the step advances and are
// never reset mid-dialog.
type TransactionDraft struct {
	Type             TransactionType
	PaymentMethod    string
	Category         string
	InstallmentCount int
	Amount           float64
	User             string
	OccurredAt       time.Time
	ReferenceMonth   string
}

// DialogSession tracks one user's in-progress guided data entry. At most one
// session exists per user id; completion, cancellation or idle eviction
// destroys it.
type DialogSession struct {
	UserID         string
	Step           DialogStep
	LastActivityAt time.Time
	Draft          TransactionDraft
}
