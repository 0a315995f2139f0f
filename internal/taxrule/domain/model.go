package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// TaxRule is one hotel-scoped tax definition. CalcBasedOn is either the
// named-dependency grammar ("Base" or "Base+<TaxName>+...") consumed by the
// resolver, or one of the fixed ladder layers (Base, Subtotal1..4) consumed
// by the GL builder.
type TaxRule struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index:idx_tax_rules_hotel_name,unique"`

	TaxName     string        `gorm:"column:tax_name;type:text;not null;index:idx_tax_rules_hotel_name,unique"`
	Percentage  float64       `gorm:"type:numeric(8,4);not null"`
	CalcBasedOn string        `gorm:"column:calc_based_on;type:text;not null;default:Base"`
	AccountID   *snowflake.ID `gorm:"column:account_id"`
	TaxCode     *string       `gorm:"column:tax_code;type:text"`

	IsEnabled bool `gorm:"column:is_enabled;not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TaxRule) TableName() string { return "tax_rules" }

func (t *TaxRule) Validate() error {
	if strings.TrimSpace(t.TaxName) == "" {
		return ErrInvalidTaxName
	}
	if t.Percentage < 0 {
		return ErrInvalidPercentage
	}
	if strings.TrimSpace(t.CalcBasedOn) == "" {
		return ErrInvalidCalcBasedOn
	}
	return nil
}
