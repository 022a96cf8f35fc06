package plan

import (
	"github.com/freshbowl/freshbowl/internal/plan/repository"
	"github.com/freshbowl/freshbowl/internal/plan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
