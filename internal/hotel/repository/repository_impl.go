package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	"github.com/smallbiznis/folio/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) hoteldomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hotel *hoteldomain.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*hoteldomain.Hotel, error) {
	var hotel hoteldomain.Hotel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*hoteldomain.Hotel, error) {
	var hotel hoteldomain.Hotel
	err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&hotel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) List(ctx context.Context, filter hoteldomain.ListRequest) ([]hoteldomain.Hotel, error) {
	var items []hoteldomain.Hotel
	stmt := r.db.WithContext(ctx).Model(&hoteldomain.Hotel{})

	if filter.Code != "" {
		stmt = stmt.Where("code = ?", filter.Code)
	}
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"code":       true,
		"name":       true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, hotel *hoteldomain.Hotel) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE hotels
		 SET name = ?, currency_code = ?, timezone = ?, breakfast_price = ?, lunch_price = ?,
		     dinner_price = ?, all_inclusive_price = ?, is_enabled = ?, updated_at = ?
		 WHERE id = ?`,
		hotel.Name,
		hotel.CurrencyCode,
		hotel.Timezone,
		hotel.BreakfastPrice,
		hotel.LunchPrice,
		hotel.DinnerPrice,
		hotel.AllInclusivePrice,
		hotel.IsEnabled,
		hotel.UpdatedAt,
		hotel.ID,
	).Error
}
