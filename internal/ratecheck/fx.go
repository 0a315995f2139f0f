package ratecheck

import (
	"github.com/smallbiznis/folio/internal/ratecheck/repository"
	"github.com/smallbiznis/folio/internal/ratecheck/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratecheck.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
