package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/freshbowl/freshbowl/internal/clock"
	"github.com/freshbowl/freshbowl/internal/config"
	"github.com/freshbowl/freshbowl/internal/dog"
	"github.com/freshbowl/freshbowl/internal/generator"
	"github.com/freshbowl/freshbowl/internal/logger"
	"github.com/freshbowl/freshbowl/internal/migration"
	"github.com/freshbowl/freshbowl/internal/order"
	"github.com/freshbowl/freshbowl/internal/plan"
	"github.com/freshbowl/freshbowl/internal/pricing"
	"github.com/freshbowl/freshbowl/internal/providers/email"
	"github.com/freshbowl/freshbowl/internal/providers/payment"
	"github.com/freshbowl/freshbowl/internal/recipe"
	"github.com/freshbowl/freshbowl/pkg/db"
	"go.uber.org/fx"
)

// Headless order generator. Runs the same loop as the monolith without
// the HTTP surface.
func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		payment.Module,
		email.Module,
		pricing.Module,

		dog.Module,
		recipe.Module,
		plan.Module,
		order.Module,
		generator.Module,

		fx.Invoke(generator.Start),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
