package email

import (
	"github.com/freshbowl/freshbowl/internal/config"
	"go.uber.org/fx"
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.SMTP.Host == "" || cfg.SMTP.OrdersInbox == "" {
		return NoOpProvider{}
	}
	return NewSMTP(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.OrdersInbox,
	)
}

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)
