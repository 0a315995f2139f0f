package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
	"github.com/smallbiznis/folio/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxruledomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *taxruledomain.TaxRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindByID(ctx context.Context, hotelID, id snowflake.ID) (*taxruledomain.TaxRule, error) {
	var rule taxruledomain.TaxRule
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) FindByName(ctx context.Context, hotelID snowflake.ID, taxName string) (*taxruledomain.TaxRule, error) {
	var rule taxruledomain.TaxRule
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND LOWER(tax_name) = ?", hotelID, strings.ToLower(strings.TrimSpace(taxName))).
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, filter taxruledomain.ListRequest) ([]taxruledomain.TaxRule, error) {
	var items []taxruledomain.TaxRule
	stmt := r.db.WithContext(ctx).
		Model(&taxruledomain.TaxRule{}).
		Where("hotel_id = ?", hotelID)

	if filter.TaxName != "" {
		stmt = stmt.Where("tax_name = ?", filter.TaxName)
	}
	if filter.TaxCode != "" {
		stmt = stmt.Where("tax_code = ?", filter.TaxCode)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"tax_name":   true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListEnabled(ctx context.Context, hotelID snowflake.ID) ([]taxruledomain.TaxRule, error) {
	var items []taxruledomain.TaxRule
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_enabled = ?", hotelID, true).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, rule *taxruledomain.TaxRule) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE tax_rules
		 SET tax_name = ?, percentage = ?, calc_based_on = ?, account_id = ?, tax_code = ?,
		     is_enabled = ?, updated_at = ?
		 WHERE hotel_id = ? AND id = ?`,
		rule.TaxName,
		rule.Percentage,
		rule.CalcBasedOn,
		rule.AccountID,
		rule.TaxCode,
		rule.IsEnabled,
		rule.UpdatedAt,
		rule.HotelID,
		rule.ID,
	).Error
}
