package ledgerRepository

// Schema, for reference (managed outside the app):
//
//	CREATE TABLE IF NOT EXISTS transactions (
//	    id              TEXT PRIMARY KEY,
//	    tipo            TEXT NOT NULL,
//	    forma_pagamento TEXT,
//	    categoria       TEXT NOT NULL,
//	    valor           NUMERIC(14, 2) NOT NULL,
//	    parcelas        INTEGER,
//	    parcela_atual   INTEGER,
//	    descricao       TEXT,
//	    usuario         TEXT NOT NULL,
//	    data            TIMESTAMPTZ NOT NULL,
//	    mes_referencia  TEXT NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX IF NOT EXISTS idx_transactions_mes ON transactions (mes_referencia);
const (
	queryInsertTransaction = `
		INSERT INTO transactions (
			id,
			tipo,
			forma_pagamento,
			categoria,
			valor,
			parcelas,
			parcela_atual,
			descricao,
			usuario,
			data,
			mes_referencia,
			created_at
		) VALUES (
			:id,
			:tipo,
			:forma_pagamento,
			:categoria,
			:valor,
			:parcelas,
			:parcela_atual,
			:descricao,
			:usuario,
			:data,
			:mes_referencia,
			:created_at
		)
	`

	queryGetTransactionsByReferenceMonth = `
		SELECT
			id,
			tipo,
			forma_pagamento,
			categoria,
			valor,
			parcelas,
			parcela_atual,
			descricao,
			usuario,
			data,
			mes_referencia
		FROM transactions
		WHERE mes_referencia = :mes_referencia
		ORDER BY data DESC
	`
)
