package taxrule

import (
	"github.com/smallbiznis/folio/internal/taxrule/repository"
	"github.com/smallbiznis/folio/internal/taxrule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxrule.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
