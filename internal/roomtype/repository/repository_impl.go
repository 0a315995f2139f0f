package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	"github.com/smallbiznis/folio/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) roomtypedomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, roomType *roomtypedomain.RoomType) error {
	return r.db.WithContext(ctx).Create(roomType).Error
}

func (r *repository) FindByID(ctx context.Context, hotelID, id snowflake.ID) (*roomtypedomain.RoomType, error) {
	var roomType roomtypedomain.RoomType
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&roomType).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &roomType, nil
}

func (r *repository) FindByName(ctx context.Context, hotelID snowflake.ID, name string) (*roomtypedomain.RoomType, error) {
	var roomType roomtypedomain.RoomType
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND LOWER(name) = ?", hotelID, strings.ToLower(strings.TrimSpace(name))).
		First(&roomType).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &roomType, nil
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, filter roomtypedomain.ListRequest) ([]roomtypedomain.RoomType, error) {
	var items []roomtypedomain.RoomType
	stmt := r.db.WithContext(ctx).
		Model(&roomtypedomain.RoomType{}).
		Where("hotel_id = ?", hotelID)

	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListEnabled(ctx context.Context, hotelID snowflake.ID) ([]roomtypedomain.RoomType, error) {
	var items []roomtypedomain.RoomType
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_enabled = ?", hotelID, true).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, roomType *roomtypedomain.RoomType) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE room_types
		 SET name = ?, gl_account_id = ?, is_enabled = ?, updated_at = ?
		 WHERE hotel_id = ? AND id = ?`,
		roomType.Name,
		roomType.GLAccountID,
		roomType.IsEnabled,
		roomType.UpdatedAt,
		roomType.HotelID,
		roomType.ID,
	).Error
}
