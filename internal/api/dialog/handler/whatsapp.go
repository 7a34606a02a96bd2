package dialogHandler

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"FinancasBot/internal/api/dialog"
	dialogService "FinancasBot/internal/api/dialog/service"
	ledgerService "FinancasBot/internal/api/ledger/service"
	"FinancasBot/internal/entity"
	contextPkg "FinancasBot/pkg/context"
	"FinancasBot/pkg/utils"
	"FinancasBot/pkg/whatsapp"
)

// Replies longer than this during a session are almost certainly an echoed
// menu, never a value or an index.
const maxSessionReplyLen = 50

// Every prompt this bot emits starts with one of these markers; inbound
// bodies starting with them are the bot's own messages bounced back.
var botEchoPrefixes = []string{
	"💰", "📤", "📥", "✅", "❌", "📊", "🤖", "💳", "💵", "⚠️", "🏷️", "ℹ️",
}

type DialogHandler struct {
	log           *logrus.Logger
	gateway       whatsapp.IWhatsappGateway
	dialogService dialogService.IDialogService
	ledgerService ledgerService.ILedgerService
	utils         utils.IUtils
}

func New(
	log *logrus.Logger,
	gateway whatsapp.IWhatsappGateway,
	ds dialogService.IDialogService,
	ls ledgerService.ILedgerService,
	utils utils.IUtils,
) *DialogHandler {
	return &DialogHandler{
		log:           log,
		gateway:       gateway,
		dialogService: ds,
		ledgerService: ls,
		utils:         utils,
	}
}

// Start subscribes the router to the gateway's inbound message stream.
func (h *DialogHandler) Start() {
	h.gateway.OnMessage(h.HandleMessage)
}

// HandleMessage routes one inbound group message: cancel and restart first,
// then an active session, then the rest of the command vocabulary. Replies
// for different users proceed independently; same-user replies serialize in
// arrival order.
func (h *DialogHandler) HandleMessage(msg whatsapp.Message) {
	if msg.FromMe || msg.SenderID == "" {
		return
	}

	body := strings.TrimSpace(msg.Body)
	if body == "" || h.isBotEcho(body) {
		return
	}

	unlock := h.dialogService.LockUser(msg.SenderID)
	defer unlock()

	ctx, cancel := context.WithTimeout(contextPkg.FromMessageID(msg.ID), 30*time.Second)
	defer cancel()

	command := strings.ToLower(body)

	if command == "!cancelar" {
		h.reply(ctx, msg, h.dialogService.Cancel(ctx, msg.SenderID))
		return
	}

	// !lancar never feeds an active session; it silently replaces it.
	if command == "!lancar" {
		h.startDialog(ctx, msg)
		return
	}

	if h.dialogService.HasSession(msg.SenderID) {
		if len(body) > maxSessionReplyLen {
			return
		}

		replyText, err := h.dialogService.HandleReply(ctx, msg.SenderID, body)
		if err != nil && errors.Is(err, dialog.ErrNoActiveSession) {
			// Evicted between lookup and handling; fall through and treat
			// the message as a fresh command.
		} else {
			if err != nil {
				h.log.WithFields(logrus.Fields{
					"user_id": msg.SenderID,
					"error":   err.Error(),
				}).Warn("Dialog step ended with error")
			}
			if replyText != "" {
				h.reply(ctx, msg, replyText)
			}
			return
		}
	}

	if !strings.HasPrefix(command, "!") {
		return
	}

	switch command {
	case "!saldo":
		h.showBalance(ctx, msg)
	case "!ajuda", "!help":
		h.reply(ctx, msg, dialogService.HelpMessage())
	default:
		h.reply(ctx, msg, dialogService.UnknownCommandMessage())
	}
}

func (h *DialogHandler) startDialog(ctx context.Context, msg whatsapp.Message) {
	userName := msg.SenderName
	if userName == "" {
		userName = h.utils.FormatDisplayPhone(msg.SenderID)
	}

	replyText, err := h.dialogService.StartDialog(ctx, msg.SenderID, userName)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"user_id": msg.SenderID,
			"error":   err.Error(),
		}).Error("Failed to start dialog")
		return
	}

	h.reply(ctx, msg, replyText)
}

func (h *DialogHandler) showBalance(ctx context.Context, msg whatsapp.Message) {
	now := time.Now()

	balance, err := h.ledgerService.MonthlyBalance(ctx, entity.ReferenceMonthOf(now))
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"user_id": msg.SenderID,
			"error":   err.Error(),
		}).Error("Failed to compute monthly balance")
		h.reply(ctx, msg, dialogService.BalanceUnavailableMessage())
		return
	}

	h.reply(ctx, msg, dialogService.BalanceMessage(balance, now))
}

func (h *DialogHandler) isBotEcho(body string) bool {
	for _, prefix := range botEchoPrefixes {
		if strings.HasPrefix(body, prefix) {
			return true
		}
	}
	return false
}

func (h *DialogHandler) reply(ctx context.Context, msg whatsapp.Message, text string) {
	if err := h.gateway.SendMessage(ctx, msg.ChatID, text); err != nil {
		h.log.WithFields(logrus.Fields{
			"chat_id": msg.ChatID,
			"error":   err.Error(),
		}).Error("Failed to send reply")
	}
}
