package dialogService

import (
	"fmt"
	"strings"
	"time"

	ledgerService "FinancasBot/internal/api/ledger/service"
	"FinancasBot/internal/entity"
)

// Every outbound text starts with one of these emoji markers; the router's
// anti-loop filter drops inbound messages that start with them, so the texts
// here and that filter must stay in sync.
const (
	msgInvalidType         = "❌ Opção inválida! Digite 1 para GASTO ou 2 para ENTRADA"
	msgInvalidOption       = "❌ Opção inválida! Digite um número válido da lista."
	msgInvalidInstallments = "❌ Número inválido! Digite um número entre 1 e 99."
	msgInvalidValue        = "❌ Valor inválido! Digite um número válido."
	msgCancelled           = "❌ Lançamento cancelado com sucesso!"
	msgNothingToCancel     = "ℹ️ Nenhum lançamento em andamento."
	msgConfigMissing       = "❌ Nenhuma categoria configurada! Verifique as variáveis de ambiente."
	msgInternalError       = "❌ Erro interno: etapa desconhecida. Use !cancelar e tente novamente."
	msgUnknownCommand      = "❌ Comando não reconhecido."
	msgBalanceUnavailable  = "❌ Erro ao buscar saldo. Tente novamente em instantes."
)

const promptNewEntry = "💰 *NOVO LANÇAMENTO*\n\n" +
	"Escolha o tipo de transação:\n\n" +
	"1️⃣ GASTO\n" +
	"2️⃣ ENTRADA\n\n" +
	"✏️ Digite 1 ou 2\n" +
	"⚠️ Para cancelar, digite: !cancelar"

func numberedList(options []string) string {
	lines := make([]string, 0, len(options))
	for i, option := range options {
		lines = append(lines, fmt.Sprintf("%d️⃣ %s", i+1, option))
	}
	return strings.Join(lines, "\n")
}

func promptPaymentMethods(methods []string) string {
	return "📤 *GASTO SELECIONADO*\n\n" +
		"Como você pagou?\n\n" +
		numberedList(methods) + "\n\n" +
		"✏️ Digite o número da forma de pagamento\n" +
		"⚠️ Para cancelar, digite: !cancelar"
}

func promptIncomeSources(sources []string) string {
	return "📥 *ENTRADA SELECIONADA*\n\n" +
		"Escolha a origem:\n\n" +
		numberedList(sources) + "\n\n" +
		"✏️ Digite o número da origem\n" +
		"⚠️ Para cancelar, digite: !cancelar"
}

const promptInstallments = "💳 *PARCELADO SELECIONADO*\n\n" +
	"Em quantas vezes será parcelado?\n\n" +
	"✏️ Digite o número de parcelas (ex: 12)\n" +
	"⚠️ Para cancelar, digite: !cancelar"

func paymentSummary(draft entity.TransactionDraft) string {
	if draft.PaymentMethod == "" {
		return ""
	}
	summary := "\n💳 Forma: " + draft.PaymentMethod
	if draft.InstallmentCount > 0 {
		summary += fmt.Sprintf(" (%dx)", draft.InstallmentCount)
	}
	return summary
}

func promptCategoryMenu(categories []string, draft entity.TransactionDraft) string {
	return "🏷️ *O QUE VOCÊ COMPROU?*" + paymentSummary(draft) + "\n\n" +
		"Escolha a categoria:\n\n" +
		numberedList(categories) + "\n\n" +
		"✏️ Digite o número da categoria\n" +
		"⚠️ Para cancelar, digite: !cancelar"
}

func promptValue(draft entity.TransactionDraft) string {
	summary := ""
	if draft.Type == entity.TransactionTypeExpense {
		method := draft.PaymentMethod
		if method == "" {
			method = "N/A"
		}
		summary = "\n💳 " + method
		if draft.InstallmentCount > 0 {
			summary += fmt.Sprintf(" (%dx)", draft.InstallmentCount)
		}
	}

	return "💵 *" + strings.ToUpper(draft.Category) + "*" + summary + "\n\n" +
		"✏️ Digite o valor (ex: 100 ou 150,50)\n" +
		"⚠️ Para cancelar, digite: !cancelar"
}

func singleSavedMessage(transaction entity.Transaction) string {
	emoji, typeText := "📤", "GASTO"
	if transaction.Type == entity.TransactionTypeIncome {
		emoji, typeText = "📥", "ENTRADA"
	}

	return fmt.Sprintf(
		"%s *%s REGISTRADO!*\n\n"+
			"💵 Valor: R$ %.2f\n"+
			"🏷️ Categoria: %s\n"+
			"👤 Usuário: %s\n\n"+
			"✅ Lançamento salvo com sucesso!",
		emoji, typeText, transaction.Amount, transaction.Category, transaction.User,
	)
}

func singleSaveFailedMessage(reason string) string {
	if reason == "" {
		reason = "desconhecido"
	}
	return "❌ Erro ao salvar: " + reason
}

func installmentPlanMessage(result ledgerService.InstallmentPlanResult, draft entity.TransactionDraft) string {
	return fmt.Sprintf(
		"💳 *PARCELAMENTO REGISTRADO!*\n\n"+
			"💵 Valor Total: R$ %.2f\n"+
			"💳 Parcelas: %dx de aproximadamente R$ %.2f\n"+
			"🏷️ Categoria: %s\n"+
			"👤 Usuário: %s\n\n"+
			"✅ %d/%d parcelas salvas!\n"+
			"⚠️ Cada parcela foi lançada em um mês diferente",
		result.Total, result.Count, result.BaseAmount,
		draft.Category, draft.User,
		result.SavedCount, result.Count,
	)
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// BalanceMessage renders the !saldo report for the current calendar month.
func BalanceMessage(balance entity.MonthlyBalance, now time.Time) string {
	saldoEmoji := "✅"
	if balance.Balance < 0 {
		saldoEmoji = "⚠️"
	}

	extra := ""
	switch {
	case balance.IncomeCount == 0 && balance.ExpenseCount == 0:
		extra = "\n💡 Ainda não há lançamentos este mês. Use !lancar para começar."
	case balance.Balance < 0:
		extra = "\n⚠️ Atenção: Você está gastando mais do que ganha!"
	}

	monthLabel := fmt.Sprintf("%s/%d", monthNames[now.Month()-1], now.Year())

	return fmt.Sprintf(
		"📊 *SALDO DO MÊS*\n"+
			"📅 %s\n\n"+
			"📥 Entradas: R$ %.2f\n"+
			"📤 Gastos: R$ %.2f\n\n"+
			"%s *Saldo: R$ %.2f*%s",
		monthLabel, balance.TotalIncome, balance.TotalExpense,
		saldoEmoji, balance.Balance, extra,
	)
}

func UnknownCommandMessage() string {
	return msgUnknownCommand
}

func BalanceUnavailableMessage() string {
	return msgBalanceUnavailable
}

func HelpMessage() string {
	return "🤖 *BOT FINANCEIRO - COMANDOS*\n\n" +
		"*!lancar* - Registrar novo gasto ou entrada\n" +
		"*!saldo* - Ver saldo do mês atual\n" +
		"*!ajuda* - Mostrar esta mensagem\n" +
		"*!cancelar* - Cancelar lançamento em andamento\n\n" +
		"📝 *Como usar:*\n" +
		"1️⃣ Digite !lancar\n" +
		"2️⃣ Escolha tipo (Gasto/Entrada)\n" +
		"3️⃣ Escolha categoria\n" +
		"4️⃣ Digite o valor\n" +
		"5️⃣ Pronto!\n\n" +
		"💡 *Dica:* Para gastos parcelados, escolha a forma de pagamento \"Parcelado\" e informe a quantidade de vezes."
}
