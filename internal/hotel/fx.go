package hotel

import (
	"github.com/smallbiznis/folio/internal/hotel/repository"
	"github.com/smallbiznis/folio/internal/hotel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("hotel.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
