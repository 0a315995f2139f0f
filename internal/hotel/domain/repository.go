package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, hotel *Hotel) error
	FindByID(ctx context.Context, id snowflake.ID) (*Hotel, error)
	FindByCode(ctx context.Context, code string) (*Hotel, error)
	List(ctx context.Context, filter ListRequest) ([]Hotel, error)
	Update(ctx context.Context, hotel *Hotel) error
}
