package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"FinancasBot/database/postgres"
	"FinancasBot/internal/api/dialog"
	dialogHandler "FinancasBot/internal/api/dialog/handler"
	dialogService "FinancasBot/internal/api/dialog/service"
	ledgerHandler "FinancasBot/internal/api/ledger/handler"
	ledgerRepository "FinancasBot/internal/api/ledger/repository"
	ledgerService "FinancasBot/internal/api/ledger/service"
	"FinancasBot/internal/middleware"
	redisPkg "FinancasBot/pkg/redis"
	"FinancasBot/pkg/utils"
	"FinancasBot/pkg/whatsapp"
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	handlers        []handler
	redisServer     redisPkg.IRedis
	whatsappGateway whatsapp.IWhatsappGateway
	botConfig       BotConfig
	dialogHandlers  *dialogHandler.DialogHandler
	dialogServices  dialogService.IDialogService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.whatsappGateway == nil {
		return nil, fmt.Errorf("whatsapp gateway is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redisPkg.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithBotConfig() ServerOption {
	return func(s *Server) error {
		if s.validator == nil {
			return fmt.Errorf("validator must be initialized before bot config")
		}
		cfg, err := NewBotConfig(s.validator)
		if err != nil {
			return err
		}
		s.botConfig = cfg
		return nil
	}
}

func WithWhatsappGateway() ServerOption {
	return func(s *Server) error {
		if s.botConfig.GroupName == "" {
			return fmt.Errorf("bot config must be initialized before whatsapp gateway")
		}
		gateway, err := whatsapp.New(s.log, s.botConfig.GroupName)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize WhatsApp gateway: %v", err)
			}
			return fmt.Errorf("failed to create whatsapp gateway: %w", err)
		}
		s.whatsappGateway = gateway
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Ledger domain
	ledgerRepo := ledgerRepository.New(s.db, s.log)
	ledgerServices := ledgerService.NewLedgerService(s.log, ledgerRepo, s.redisServer, s.utils)
	ledgerHandlers := ledgerHandler.New(s.log, s.validator, s.middleware, ledgerServices)

	// Dialog domain
	sessionStore := dialogService.NewSessionStore(s.log, s.botConfig.SessionIdleTimeout)
	dialogServices := dialogService.NewDialogService(s.log, sessionStore, ledgerServices, dialog.Options{
		PaymentMethods:    s.botConfig.PaymentMethods,
		ExpenseCategories: s.botConfig.ExpenseCategories,
		IncomeSources:     s.botConfig.IncomeSources,
	})
	dialogHandlers := dialogHandler.New(s.log, s.whatsappGateway, dialogServices, ledgerServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, ledgerHandlers)
	s.dialogHandlers = dialogHandlers
	s.dialogServices = dialogServices
}

func (s *Server) Run() error {
	s.dialogHandlers.Start()
	s.dialogServices.StartSweeper(context.Background(), s.botConfig.SessionSweepInterval)

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.whatsappGateway != nil {
			s.whatsappGateway.Disconnect()
		}
		return err
	}

	return nil
}

// Shutdown stops the HTTP engine, logs the WhatsApp device out of its socket
// and closes the database pool. Safe to call once after Run.
func (s *Server) Shutdown() {
	if err := s.engine.Shutdown(); err != nil {
		s.log.Errorf("Error shutting down HTTP server: %v", err)
	}

	if s.whatsappGateway != nil {
		if err := s.whatsappGateway.Disconnect(); err != nil {
			s.log.Errorf("Error disconnecting WhatsApp: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Errorf("Error closing database: %v", err)
		}
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":            "Server is Healthy!",
			"whatsapp_connected": s.whatsappGateway.IsConnected(),
		})
	})
}
