package ledgerRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"FinancasBot/internal/entity"
	contextPkg "FinancasBot/pkg/context"
)

type TransactionDB struct {
	ID               sql.NullString  `db:"id"`
	Type             sql.NullString  `db:"tipo"`
	PaymentMethod    sql.NullString  `db:"forma_pagamento"`
	Category         sql.NullString  `db:"categoria"`
	Amount           sql.NullFloat64 `db:"valor"`
	InstallmentCount sql.NullInt64   `db:"parcelas"`
	InstallmentIndex sql.NullInt64   `db:"parcela_atual"`
	Description      sql.NullString  `db:"descricao"`
	User             sql.NullString  `db:"usuario"`
	OccurredAt       time.Time       `db:"data"`
	ReferenceMonth   sql.NullString  `db:"mes_referencia"`
}

func (r *transactionRepository) Insert(c context.Context, transaction entity.Transaction) error {
	requestID := contextPkg.GetRequestID(c)

	var paymentMethod, description interface{}
	if transaction.PaymentMethod != "" {
		paymentMethod = transaction.PaymentMethod
	}
	if transaction.Description != "" {
		description = transaction.Description
	}

	var installmentCount, installmentIndex interface{}
	if transaction.InstallmentCount > 0 {
		installmentCount = transaction.InstallmentCount
		installmentIndex = transaction.InstallmentIndex
	}

	argsKV := map[string]interface{}{
		"id":              transaction.ID,
		"tipo":            string(transaction.Type),
		"forma_pagamento": paymentMethod,
		"categoria":       transaction.Category,
		"valor":           transaction.Amount,
		"parcelas":        installmentCount,
		"parcela_atual":   installmentIndex,
		"descricao":       description,
		"usuario":         transaction.User,
		"data":            transaction.OccurredAt,
		"mes_referencia":  transaction.ReferenceMonth,
		"created_at":      time.Now(),
	}

	query, args, err := sqlx.Named(queryInsertTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for Insert")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when inserting transaction")

		return err
	}

	return nil
}

func (r *transactionRepository) GetByReferenceMonth(c context.Context, referenceMonth string) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var transactions []TransactionDB

	argsKV := map[string]interface{}{
		"mes_referencia": referenceMonth,
	}

	query, args, err := sqlx.Named(queryGetTransactionsByReferenceMonth, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByReferenceMonth named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &transactions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByReferenceMonth execution err")
		return nil, err
	}

	result := make([]entity.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		result = append(result, r.makeTransaction(transaction))
	}

	return result, nil
}

func (r *transactionRepository) makeTransaction(transaction TransactionDB) entity.Transaction {
	return entity.Transaction{
		ID:               transaction.ID.String,
		Type:             entity.TransactionType(transaction.Type.String),
		PaymentMethod:    transaction.PaymentMethod.String,
		Category:         transaction.Category.String,
		Amount:           transaction.Amount.Float64,
		InstallmentCount: int(transaction.InstallmentCount.Int64),
		InstallmentIndex: int(transaction.InstallmentIndex.Int64),
		Description:      transaction.Description.String,
		User:             transaction.User.String,
		OccurredAt:       transaction.OccurredAt,
		ReferenceMonth:   transaction.ReferenceMonth.String,
	}
}
