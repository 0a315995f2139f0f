package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// RoomType maps a room type name to the revenue account its base room
// charge posts to during night audit.
type RoomType struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_room_types_hotel_name,unique"`

	Name        string        `gorm:"type:text;not null;index:idx_room_types_hotel_name,unique"`
	GLAccountID *snowflake.ID `gorm:"column:gl_account_id"`

	IsEnabled bool `gorm:"column:is_enabled;not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RoomType) TableName() string { return "room_types" }

func (r *RoomType) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
