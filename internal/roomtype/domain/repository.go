package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, roomType *RoomType) error
	FindByID(ctx context.Context, hotelID, id snowflake.ID) (*RoomType, error)
	FindByName(ctx context.Context, hotelID snowflake.ID, name string) (*RoomType, error)
	List(ctx context.Context, hotelID snowflake.ID, filter ListRequest) ([]RoomType, error)
	ListEnabled(ctx context.Context, hotelID snowflake.ID) ([]RoomType, error)
	Update(ctx context.Context, roomType *RoomType) error
}
