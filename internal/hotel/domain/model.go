package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Hotel is a property the audit pipeline operates on. Meal prices are
// per-property overrides; nil falls back to the configured defaults.
type Hotel struct {
	ID snowflake.ID `gorm:"primaryKey"`

	Code         string `gorm:"type:text;not null;uniqueIndex"`
	Name         string `gorm:"type:text;not null"`
	CurrencyCode string `gorm:"column:currency_code;type:text;not null;default:USD"`
	Timezone     string `gorm:"type:text;not null;default:UTC"`

	BreakfastPrice    *float64 `gorm:"column:breakfast_price;type:numeric(12,2)"`
	LunchPrice        *float64 `gorm:"column:lunch_price;type:numeric(12,2)"`
	DinnerPrice       *float64 `gorm:"column:dinner_price;type:numeric(12,2)"`
	AllInclusivePrice *float64 `gorm:"column:all_inclusive_price;type:numeric(12,2)"`

	IsEnabled bool `gorm:"column:is_enabled;not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Hotel) TableName() string { return "hotels" }

func (h *Hotel) Validate() error {
	if strings.TrimSpace(h.Code) == "" {
		return ErrInvalidCode
	}
	if strings.TrimSpace(h.Name) == "" {
		return ErrInvalidName
	}
	for _, price := range []*float64{h.BreakfastPrice, h.LunchPrice, h.DinnerPrice, h.AllInclusivePrice} {
		if price != nil && *price < 0 {
			return ErrInvalidMealPrice
		}
	}
	return nil
}
