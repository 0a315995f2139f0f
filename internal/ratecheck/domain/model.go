package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// RateCheckRow is one reservation-night as seen by the night audit: the
// tax-inclusive rate plus everything needed to route its revenue.
type RateCheckRow struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_rate_checks_hotel_date"`

	ReservationID       snowflake.ID `gorm:"column:reservation_id;not null"`
	ReservationDetailID snowflake.ID `gorm:"column:reservation_detail_id;not null;index:idx_rate_checks_detail_date,unique"`
	RateDate            time.Time    `gorm:"column:rate_date;type:date;not null;index:idx_rate_checks_hotel_date;index:idx_rate_checks_detail_date,unique"`

	MealPlan  string `gorm:"column:meal_plan;type:text"`
	RoomType  string `gorm:"column:room_type;type:text"`
	RoomNo    string `gorm:"column:room_no;type:text"`
	GuestName string `gorm:"column:guest_name;type:text"`

	NetRate float64 `gorm:"column:net_rate;type:numeric(12,2);not null"`
	Adult   int     `gorm:"not null;default:0"`
	Child   int     `gorm:"not null;default:0"`
	IsFOC   bool    `gorm:"column:is_foc;not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RateCheckRow) TableName() string { return "rate_check_rows" }

func (r *RateCheckRow) Validate() error {
	if r.ReservationDetailID == 0 {
		return ErrInvalidReservationDetail
	}
	if r.RateDate.IsZero() {
		return ErrInvalidRateDate
	}
	if r.NetRate < 0 {
		return ErrInvalidNetRate
	}
	if r.Adult < 0 || r.Child < 0 {
		return ErrInvalidOccupancy
	}
	if strings.TrimSpace(r.RoomType) == "" {
		return ErrInvalidRoomType
	}
	return nil
}
