package ledger

type MonthlyQuery struct {
	Month string `query:"month" validate:"omitempty,datetime=2006-01"`
}

type TransactionResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"tipo"`
	PaymentMethod    string  `json:"forma_pagamento,omitempty"`
	Category         string  `json:"categoria"`
	Amount           float64 `json:"valor"`
	InstallmentCount int     `json:"parcelas,omitempty"`
	InstallmentIndex int     `json:"parcela_atual,omitempty"`
	Description      string  `json:"descricao,omitempty"`
	User             string  `json:"usuario"`
	OccurredAt       string  `json:"data"`
	ReferenceMonth   string  `json:"mes_referencia"`
}

type TransactionListResponse struct {
	ReferenceMonth string                `json:"mes_referencia"`
	Transactions   []TransactionResponse `json:"transactions"`
}
