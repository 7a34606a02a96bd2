package ledgerService

import (
	ledgerRepository "FinancasBot/internal/api/ledger/repository"
	"FinancasBot/internal/entity"
	redisPkg "FinancasBot/pkg/redis"
	"FinancasBot/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ILedgerService interface {
	CreateTransaction(ctx context.Context, transaction entity.Transaction) error
	CreateInstallmentPlan(ctx context.Context, draft entity.TransactionDraft) (InstallmentPlanResult, error)
	MonthlyBalance(ctx context.Context, referenceMonth string) (entity.MonthlyBalance, error)
	MonthlyTransactions(ctx context.Context, referenceMonth string) ([]entity.Transaction, error)
}

// InstallmentPlanResult reports how a split submission went. Persistence
// failures are tolerated per installment, so SavedCount may be lower than
// Count.
type InstallmentPlanResult struct {
	Total      float64
	Count      int
	BaseAmount float64
	SavedCount int
}

type ledgerService struct {
	log              *logrus.Logger
	ledgerRepository ledgerRepository.Repository
	cache            redisPkg.IRedis
	utils            utils.IUtils
}

func NewLedgerService(log *logrus.Logger, lr ledgerRepository.Repository, cache redisPkg.IRedis, utils utils.IUtils) ILedgerService {
	return &ledgerService{
		log:              log,
		ledgerRepository: lr,
		cache:            cache,
		utils:            utils,
	}
}
