package migration

import (
	"github.com/smallbiznis/folio/internal/config"
	"github.com/smallbiznis/folio/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}

		if cfg.BootstrapDefaultHotel {
			return seed.EnsureDefaultHotel(conn)
		}
		return nil
	}),
)
