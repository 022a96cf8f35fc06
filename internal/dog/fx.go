package dog

import (
	"github.com/freshbowl/freshbowl/internal/dog/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("dog",
	fx.Provide(repository.Provide),
)
