package payment

import (
	"github.com/freshbowl/freshbowl/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Provide(cfg config.Config, log *zap.Logger) Provider {
	if cfg.StripeAPIKey == "" {
		log.Warn("stripe api key not set, live price lookups disabled")
		return NewNoop()
	}
	return NewStripe(cfg.StripeAPIKey, log)
}

var Module = fx.Module("providers.payment",
	fx.Provide(Provide),
)
