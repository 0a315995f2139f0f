package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	"github.com/smallbiznis/folio/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) mealplandomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, plan *mealplandomain.MealPlanRule) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *repository) FindByID(ctx context.Context, hotelID, id snowflake.ID) (*mealplandomain.MealPlanRule, error) {
	var plan mealplandomain.MealPlanRule
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repository) FindByName(ctx context.Context, hotelID snowflake.ID, mealPlan string) (*mealplandomain.MealPlanRule, error) {
	var plan mealplandomain.MealPlanRule
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND LOWER(meal_plan) = ?", hotelID, strings.ToLower(strings.TrimSpace(mealPlan))).
		First(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repository) List(ctx context.Context, hotelID snowflake.ID, filter mealplandomain.ListRequest) ([]mealplandomain.MealPlanRule, error) {
	var items []mealplandomain.MealPlanRule
	stmt := r.db.WithContext(ctx).
		Model(&mealplandomain.MealPlanRule{}).
		Where("hotel_id = ?", hotelID)

	if filter.MealPlan != "" {
		stmt = stmt.Where("meal_plan = ?", filter.MealPlan)
	}
	if filter.ShortCode != "" {
		stmt = stmt.Where("short_code = ?", filter.ShortCode)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"meal_plan":  true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListEnabled(ctx context.Context, hotelID snowflake.ID) ([]mealplandomain.MealPlanRule, error) {
	var items []mealplandomain.MealPlanRule
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_enabled = ?", hotelID, true).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, plan *mealplandomain.MealPlanRule) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE meal_plans
		 SET meal_plan = ?, short_code = ?, break_fast = ?, lunch = ?, dinner = ?, ai = ?,
		     is_enabled = ?, updated_at = ?
		 WHERE hotel_id = ? AND id = ?`,
		plan.MealPlan,
		plan.ShortCode,
		plan.BreakFast,
		plan.Lunch,
		plan.Dinner,
		plan.AI,
		plan.IsEnabled,
		plan.UpdatedAt,
		plan.HotelID,
		plan.ID,
	).Error
}
