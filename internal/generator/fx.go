package generator

import (
	"context"

	"github.com/freshbowl/freshbowl/internal/config"
	"go.uber.org/fx"
)

func ConfigFromEnv(cfg config.Config) Config {
	return Config{
		RunInterval:      cfg.GeneratorInterval,
		BatchSize:        cfg.GeneratorBatchSize,
		RunTimeout:       cfg.GeneratorTimeout,
		DeliveryLeadDays: cfg.GeneratorLeadDays,
	}
}

var Module = fx.Module("generator",
	fx.Provide(ConfigFromEnv),
	fx.Provide(New),
)

// Start runs the generator loop for the lifetime of the application.
func Start(lc fx.Lifecycle, g *Generator) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				g.RunForever(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
