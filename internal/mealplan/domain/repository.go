package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, plan *MealPlanRule) error
	FindByID(ctx context.Context, hotelID, id snowflake.ID) (*MealPlanRule, error)
	FindByName(ctx context.Context, hotelID snowflake.ID, mealPlan string) (*MealPlanRule, error)
	List(ctx context.Context, hotelID snowflake.ID, filter ListRequest) ([]MealPlanRule, error)
	ListEnabled(ctx context.Context, hotelID snowflake.ID) ([]MealPlanRule, error)
	Update(ctx context.Context, plan *MealPlanRule) error
}
