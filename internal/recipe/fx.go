package recipe

import (
	"github.com/freshbowl/freshbowl/internal/recipe/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("recipe",
	fx.Provide(repository.Provide),
)
