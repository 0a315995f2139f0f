package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, rule *TaxRule) error
	FindByID(ctx context.Context, hotelID, id snowflake.ID) (*TaxRule, error)
	FindByName(ctx context.Context, hotelID snowflake.ID, taxName string) (*TaxRule, error)
	List(ctx context.Context, hotelID snowflake.ID, filter ListRequest) ([]TaxRule, error)
	ListEnabled(ctx context.Context, hotelID snowflake.ID) ([]TaxRule, error)
	Update(ctx context.Context, rule *TaxRule) error
}
