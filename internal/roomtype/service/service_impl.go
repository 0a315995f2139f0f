package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  roomtypedomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  roomtypedomain.Repository
}

func NewService(p Params) roomtypedomain.Service {
	return &Service{
		log:   p.Log.Named("roomtype.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req roomtypedomain.CreateRequest) (*roomtypedomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, roomtypedomain.ErrInvalidHotel
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, roomtypedomain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, hotelID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, roomtypedomain.ErrNameTaken
	}

	glAccountID, err := parseOptionalID(req.GLAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &roomtypedomain.RoomType{
		ID:          s.genID.Generate(),
		HotelID:     hotelID,
		Name:        name,
		GLAccountID: glAccountID,
		IsEnabled:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req roomtypedomain.ListRequest) ([]roomtypedomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, roomtypedomain.ErrInvalidHotel
	}

	filter := roomtypedomain.ListRequest{
		Name:      strings.TrimSpace(req.Name),
		IsEnabled: req.IsEnabled,
		SortBy:    strings.TrimSpace(req.SortBy),
		OrderBy:   strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, hotelID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]roomtypedomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req roomtypedomain.UpdateRequest) (*roomtypedomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, roomtypedomain.ErrInvalidHotel
	}

	roomTypeID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, roomtypedomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID, roomTypeID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, roomtypedomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, roomtypedomain.ErrInvalidName
		}
		if !strings.EqualFold(name, item.Name) {
			existing, err := s.repo.FindByName(ctx, hotelID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, roomtypedomain.ErrNameTaken
			}
		}
		item.Name = name
	}
	if req.GLAccountID != nil {
		glAccountID, err := parseOptionalID(req.GLAccountID)
		if err != nil {
			return nil, err
		}
		item.GLAccountID = glAccountID
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*roomtypedomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, roomtypedomain.ErrInvalidHotel
	}

	roomTypeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, roomtypedomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID, roomTypeID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, roomtypedomain.ErrNotFound
	}

	item.IsEnabled = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) GLAccountMap(ctx context.Context, hotelID snowflake.ID) (map[string]snowflake.ID, error) {
	items, err := s.repo.ListEnabled(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]snowflake.ID, len(items))
	for _, item := range items {
		if item.GLAccountID == nil {
			continue
		}
		mapping[strings.ToLower(strings.TrimSpace(item.Name))] = *item.GLAccountID
	}
	return mapping, nil
}

func toResponse(roomType *roomtypedomain.RoomType) roomtypedomain.Response {
	var glAccountID *string
	if roomType.GLAccountID != nil {
		value := roomType.GLAccountID.String()
		glAccountID = &value
	}
	return roomtypedomain.Response{
		ID:          roomType.ID.String(),
		HotelID:     roomType.HotelID.String(),
		Name:        roomType.Name,
		GLAccountID: glAccountID,
		IsEnabled:   roomType.IsEnabled,
		CreatedAt:   roomType.CreatedAt,
		UpdatedAt:   roomType.UpdatedAt,
	}
}

func parseOptionalID(value *string) (*snowflake.ID, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil {
		return nil, roomtypedomain.ErrInvalidID
	}
	return &parsed, nil
}
