package migration

import (
	"github.com/freshbowl/freshbowl/internal/config"
	"github.com/freshbowl/freshbowl/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := Run(conn); err != nil {
			return err
		}
		if cfg.Environment == "development" {
			return seed.EnsureStarterRecipes(conn)
		}
		return nil
	}),
)
