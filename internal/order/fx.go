package order

import (
	"github.com/freshbowl/freshbowl/internal/order/repository"
	"github.com/freshbowl/freshbowl/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
