package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// MealPlanRule describes which meals a bundled plan folds into the nightly
// rate. AI marks all-inclusive plans, which supersede the itemized flags.
type MealPlanRule struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_meal_plans_hotel_name,unique"`

	MealPlan  string `gorm:"column:meal_plan;type:text;not null;index:idx_meal_plans_hotel_name,unique"`
	ShortCode string `gorm:"column:short_code;type:text;not null"`

	BreakFast bool `gorm:"column:break_fast;not null;default:false"`
	Lunch     bool `gorm:"not null;default:false"`
	Dinner    bool `gorm:"not null;default:false"`
	AI        bool `gorm:"column:ai;not null;default:false"`

	IsEnabled bool `gorm:"column:is_enabled;not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MealPlanRule) TableName() string { return "meal_plans" }

func (m *MealPlanRule) Validate() error {
	if strings.TrimSpace(m.MealPlan) == "" {
		return ErrInvalidMealPlan
	}
	return nil
}
