package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ratecheckdomain.Repository {
	return &repository{db: db}
}

func (r *repository) ReplaceBatch(ctx context.Context, rows []ratecheckdomain.RateCheckRow) error {
	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Where(
				"reservation_detail_id = ? AND rate_date = ?",
				rows[i].ReservationDetailID,
				rows[i].RateDate,
			).Delete(&ratecheckdomain.RateCheckRow{}).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(&rows).Error
	})
}

func (r *repository) ListByDate(ctx context.Context, hotelID snowflake.ID, rateDate time.Time) ([]ratecheckdomain.RateCheckRow, error) {
	var items []ratecheckdomain.RateCheckRow
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND rate_date = ?", hotelID, rateDate).
		Order("reservation_detail_id ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
