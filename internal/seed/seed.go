// Package seed bootstraps a fresh install: a default hotel and the
// chart-of-accounts rows the night audit posts against, so the service
// is usable out of the box for local and self-hosted environments.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	"gorm.io/gorm"
)

const (
	defaultHotelCode = "MAIN"
	defaultHotelName = "Main Property"
)

type accountSeed struct {
	code ledgerdomain.GLAccountCode
	name string
	typ  ledgerdomain.GLAccountType
}

var defaultAccounts = []accountSeed{
	{ledgerdomain.AccountCodeGuestLedger, "Guest Ledger", ledgerdomain.AccountTypeAsset},
	{ledgerdomain.AccountCodeRoomRevenue, "Room Revenue", ledgerdomain.AccountTypeRevenue},
	{ledgerdomain.AccountCodeBreakfastRevenue, "Breakfast Revenue", ledgerdomain.AccountTypeRevenue},
	{ledgerdomain.AccountCodeLunchRevenue, "Lunch Revenue", ledgerdomain.AccountTypeRevenue},
	{ledgerdomain.AccountCodeDinnerRevenue, "Dinner Revenue", ledgerdomain.AccountTypeRevenue},
	{ledgerdomain.AccountCodeAllInclusiveRevenue, "All Inclusive Revenue", ledgerdomain.AccountTypeRevenue},
	{ledgerdomain.AccountCodeTaxPayable, "Tax Payable", ledgerdomain.AccountTypeLiability},
}

// EnsureDefaultHotel creates the MAIN hotel when no hotel exists yet and
// guarantees every hotel has the well-known GL accounts.
func EnsureDefaultHotel(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureMainHotelTx(ctx, tx, node); err != nil {
			return err
		}

		var hotels []hoteldomain.Hotel
		if err := tx.WithContext(ctx).Find(&hotels).Error; err != nil {
			return err
		}
		for _, hotel := range hotels {
			if err := ensureLedgerAccounts(ctx, tx, node, hotel.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureMainHotelTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (hoteldomain.Hotel, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&hoteldomain.Hotel{}).Count(&count).Error; err != nil {
		return hoteldomain.Hotel{}, err
	}
	if count > 0 {
		var hotel hoteldomain.Hotel
		err := tx.WithContext(ctx).Where("code = ?", defaultHotelCode).First(&hotel).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return hotel, err
		}
		return hotel, nil
	}

	now := time.Now().UTC()
	hotel := hoteldomain.Hotel{
		ID:           node.Generate(),
		Code:         defaultHotelCode,
		Name:         defaultHotelName,
		CurrencyCode: "USD",
		Timezone:     "UTC",
		IsEnabled:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&hotel).Error; err != nil {
		return hotel, err
	}
	return hotel, nil
}

func ensureLedgerAccounts(ctx context.Context, tx *gorm.DB, node *snowflake.Node, hotelID snowflake.ID) error {
	for _, account := range defaultAccounts {
		err := tx.WithContext(ctx).Exec(
			`INSERT INTO gl_accounts (id, hotel_id, code, name, type, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (hotel_id, code) DO NOTHING`,
			node.Generate(),
			hotelID,
			account.code,
			account.name,
			account.typ,
			time.Now().UTC(),
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
