package config

import (
	"context"
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinancasBot/pkg/whatsapp"
)

type stubGateway struct {
	disconnected bool
}

func (g *stubGateway) SendMessage(ctx context.Context, chatID, message string) error { return nil }
func (g *stubGateway) OnMessage(handler whatsapp.MessageHandler)                     {}
func (g *stubGateway) TargetGroupID() string                                         { return "" }
func (g *stubGateway) IsConnected() bool                                             { return true }

func (g *stubGateway) Disconnect() error {
	g.disconnected = true
	return nil
}

func TestServerShutdown(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gateway := &stubGateway{}
	server := &Server{
		engine:          fiber.New(),
		log:             logger,
		whatsappGateway: gateway,
	}

	server.Shutdown()

	assert.True(t, gateway.disconnected)
}

func TestNewServer_RequiredOptions(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewServer(WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fiber app is required")

	_, err = NewServer(WithFiber(fiber.New()), WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whatsapp gateway is required")
}
