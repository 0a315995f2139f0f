package roomtype

import (
	"github.com/smallbiznis/folio/internal/roomtype/repository"
	"github.com/smallbiznis/folio/internal/roomtype/service"
	"go.uber.org/fx"
)

var Module = fx.Module("roomtype.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
