package dialogService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"FinancasBot/internal/api/dialog"
	ledgerService "FinancasBot/internal/api/ledger/service"
	"FinancasBot/internal/entity"
)

// IDialogService is the conversation engine: it owns the per-user dialog
// sessions and applies one reply at a time to the step state machine. Every
// method returns the outbound reply text; sending it is the caller's job.
type IDialogService interface {
	StartDialog(ctx context.Context, userID, userName string) (string, error)
	HandleReply(ctx context.Context, userID, body string) (string, error)
	Cancel(ctx context.Context, userID string) string
	HasSession(userID string) bool
	LockUser(userID string) (unlock func())
	StartSweeper(ctx context.Context, sweepInterval time.Duration)
}

type dialogService struct {
	log           *logrus.Logger
	store         ISessionStore
	ledgerService ledgerService.ILedgerService
	options       dialog.Options
}

func NewDialogService(
	log *logrus.Logger,
	store ISessionStore,
	ls ledgerService.ILedgerService,
	options dialog.Options,
) IDialogService {
	return &dialogService{
		log:           log,
		store:         store,
		ledgerService: ls,
		options:       options,
	}
}

func (s *dialogService) StartDialog(ctx context.Context, userID, userName string) (string, error) {
	now := time.Now()

	s.store.StartOrReplace(userID, entity.TransactionDraft{
		User:           userName,
		OccurredAt:     now,
		ReferenceMonth: entity.ReferenceMonthOf(now),
	})

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
	}).Debug("Dialog session started")

	return promptNewEntry, nil
}

func (s *dialogService) Cancel(ctx context.Context, userID string) string {
	if s.store.Delete(userID) {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
		}).Debug("Dialog session cancelled")
		return msgCancelled
	}
	return msgNothingToCancel
}

func (s *dialogService) HasSession(userID string) bool {
	_, ok := s.store.Get(userID)
	return ok
}

func (s *dialogService) LockUser(userID string) (unlock func()) {
	return s.store.LockUser(userID)
}

func (s *dialogService) StartSweeper(ctx context.Context, sweepInterval time.Duration) {
	s.store.StartSweeper(ctx, sweepInterval)
}
