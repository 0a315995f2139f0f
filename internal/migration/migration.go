package migration

import (
	"errors"

	auditdomain "github.com/smallbiznis/folio/internal/audit/domain"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
	"gorm.io/gorm"
)

// RunMigrations creates or updates every table the service owns so the
// audit pipeline is fully usable out of the box on any supported
// dialect.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&hoteldomain.Hotel{},
		&taxruledomain.TaxRule{},
		&roomtypedomain.RoomType{},
		&mealplandomain.MealPlanRule{},
		&ratecheckdomain.RateCheckRow{},
		&ledgerdomain.GLAccount{},
		&ledgerdomain.GLTransaction{},
		&ledgerdomain.GLTransactionLine{},
		&auditdomain.AuditLog{},
	)
}
