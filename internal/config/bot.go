package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// BotConfig is the bot's external configuration surface. The three lists are
// pure ordered option menus, indexed from 1 in every prompt.
type BotConfig struct {
	GroupName            string        `envconfig:"GROUP_NAME" default:"Financas" validate:"required"`
	PaymentMethods       []string      `envconfig:"FORMAS_PAGAMENTO" default:"Cartão de Crédito,PIX,Dinheiro,Parcelado" validate:"required,min=1,dive,required"`
	ExpenseCategories    []string      `envconfig:"CATEGORIAS_GASTO" default:"Mercado,Restaurante,Combustível,Outros" validate:"required,min=1,dive,required"`
	IncomeSources        []string      `envconfig:"CATEGORIAS_ENTRADA" default:"Salário,Bônus,Extra,Outros" validate:"required,min=1,dive,required"`
	SessionIdleTimeout   time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m" validate:"required"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m" validate:"required"`
}

func NewBotConfig(validate *validator.Validate) (BotConfig, error) {
	var cfg BotConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return BotConfig{}, fmt.Errorf("failed to load bot config: %w", err)
	}

	cfg.PaymentMethods = trimAll(cfg.PaymentMethods)
	cfg.ExpenseCategories = trimAll(cfg.ExpenseCategories)
	cfg.IncomeSources = trimAll(cfg.IncomeSources)

	if err := validate.Struct(cfg); err != nil {
		return BotConfig{}, fmt.Errorf("invalid bot config: %w", err)
	}

	return cfg, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
