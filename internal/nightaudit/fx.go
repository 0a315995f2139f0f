package nightaudit

import (
	"github.com/smallbiznis/folio/internal/nightaudit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("nightaudit.service",
	fx.Provide(service.NewService),
)
