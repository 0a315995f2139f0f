package mealplan

import (
	"github.com/smallbiznis/folio/internal/mealplan/repository"
	"github.com/smallbiznis/folio/internal/mealplan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mealplan.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
