package whatsapp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/proto"

	"FinancasBot/database/postgres"
)

// Message is one inbound chat message, already reduced to what the command
// router needs.
type Message struct {
	ID         string
	SenderID   string
	SenderName string
	ChatID     string
	Body       string
	FromMe     bool
}

type MessageHandler func(msg Message)

type IWhatsappGateway interface {
	SendMessage(ctx context.Context, chatID, message string) error
	OnMessage(handler MessageHandler)
	TargetGroupID() string
	Disconnect() error
	IsConnected() bool
}

type whatsappGateway struct {
	client    *whatsmeow.Client
	log       *logrus.Logger
	groupName string

	mu       sync.RWMutex
	groupJID types.JID
	handler  MessageHandler

	// Outbound throttle; WhatsApp drops sessions that spam sends.
	limiter *rate.Limiter
}

func New(log *logrus.Logger, groupName string) (IWhatsappGateway, error) {
	dsn := postgres.FormatDSN()

	dbLog := waLog.Stdout("Database", "INFO", true)
	container, err := sqlstore.New(context.Background(), "postgres", dsn, dbLog)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get device store: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "INFO", true))

	gateway := &whatsappGateway{
		client:    client,
		log:       log,
		groupName: groupName,
		limiter:   rate.NewLimiter(rate.Every(300*time.Millisecond), 5),
	}

	connected := make(chan bool)
	client.AddEventHandler(func(evt interface{}) {
		switch e := evt.(type) {
		case *events.Connected:
			select {
			case connected <- true:
			default:
			}
		case *events.Message:
			gateway.dispatch(e)
		}
	})

	if client.Store.ID == nil {
		qrChan, _ := client.GetQRChannel(context.Background())
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}

		go func() {
			for evt := range qrChan {
				if evt.Event == "code" {
					fmt.Println("QR Code:", evt.Code)
				}
			}
		}()
	} else {
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}
	}

	select {
	case <-connected:
		log.Info("WhatsApp connected")
	case <-time.After(60 * time.Second):
		return nil, fmt.Errorf("connection timeout")
	}

	gateway.resolveTargetGroup()

	return gateway, nil
}

// resolveTargetGroup matches the configured group name against the joined
// groups. When it fails (fresh pairing, group renamed) the first inbound
// message from a matching group resolves it instead.
func (w *whatsappGateway) resolveTargetGroup() {
	groups, err := w.client.GetJoinedGroups(context.Background())
	if err != nil {
		w.log.Warnf("Could not list joined groups, will resolve group on first message: %v", err)
		return
	}

	for _, group := range groups {
		if group.Name == w.groupName {
			w.mu.Lock()
			w.groupJID = group.JID
			w.mu.Unlock()
			w.log.Infof("Target group found: %q (%s)", w.groupName, group.JID)
			return
		}
	}

	w.log.Warnf("Group %q not found among %d joined groups; bot stays silent until it appears", w.groupName, len(groups))
}

func (w *whatsappGateway) dispatch(evt *events.Message) {
	if evt.Message == nil {
		return
	}

	chat := evt.Info.Chat

	w.mu.RLock()
	groupJID := w.groupJID
	handler := w.handler
	w.mu.RUnlock()

	if groupJID.IsEmpty() {
		if chat.Server != types.GroupServer {
			return
		}
		info, err := w.client.GetGroupInfo(chat)
		if err != nil || info.Name != w.groupName {
			return
		}
		w.mu.Lock()
		w.groupJID = chat
		w.mu.Unlock()
		w.log.Infof("Target group resolved from inbound message: %q", w.groupName)
		groupJID = chat
	}

	if chat.String() != groupJID.String() {
		return
	}

	body := extractText(evt.Message)
	if body == "" || handler == nil {
		return
	}

	handler(Message{
		ID:         evt.Info.ID,
		SenderID:   evt.Info.Sender.ToNonAD().String(),
		SenderName: evt.Info.PushName,
		ChatID:     chat.String(),
		Body:       body,
		FromMe:     evt.Info.IsFromMe,
	})
}

func extractText(msg *waProto.Message) string {
	if text := msg.GetConversation(); text != "" {
		return text
	}
	return msg.GetExtendedTextMessage().GetText()
}

func (w *whatsappGateway) OnMessage(handler MessageHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = handler
}

func (w *whatsappGateway) TargetGroupID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.groupJID.String()
}

func (w *whatsappGateway) SendMessage(ctx context.Context, chatID, message string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	jid, err := types.ParseJID(chatID)
	if err != nil {
		return fmt.Errorf("invalid chat JID %q: %w", chatID, err)
	}

	waMsg := &waProto.Message{
		Conversation: proto.String(message),
	}

	if _, err := w.client.SendMessage(ctx, jid, waMsg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (w *whatsappGateway) Disconnect() error {
	w.client.Disconnect()
	return nil
}

func (w *whatsappGateway) IsConnected() bool {
	return w.client.IsConnected()
}
