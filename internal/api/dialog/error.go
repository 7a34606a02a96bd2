package dialog

import "FinancasBot/pkg/response"

var (
	ErrNoActiveSession = response.NewError(404, "no active dialog session")
	ErrEmptyOptionList = response.NewError(500, "option list not configured")
	ErrUnknownStep     = response.NewError(500, "unknown dialog step")
)
