package dialog

// Options are the configured menus the state machine indexes from 1 in every
// prompt. IncomeSources plays the category role for ENTRADA transactions.
type Options struct {
	PaymentMethods    []string
	ExpenseCategories []string
	IncomeSources     []string
}

func (o Options) CategoriesFor(isExpense bool) []string {
	if isExpense {
		return o.ExpenseCategories
	}
	return o.IncomeSources
}
