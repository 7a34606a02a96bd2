package ledgerHandler

import (
	ledgerService "FinancasBot/internal/api/ledger/service"
	"FinancasBot/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LedgerHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	ledgerService ledgerService.ILedgerService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ledgerService ledgerService.ILedgerService,
) *LedgerHandler {
	return &LedgerHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		ledgerService: ledgerService,
	}
}

func (h *LedgerHandler) Start(srv fiber.Router) {
	ledger := srv.Group("/ledger")

	ledger.Get("/balance", h.middleware.NewRateLimiter, h.GetMonthlyBalance)
	ledger.Get("/transactions", h.middleware.NewRateLimiter, h.GetMonthlyTransactions)
}
