package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  hoteldomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  hoteldomain.Repository
}

func NewService(p serviceParams) hoteldomain.Service {
	return &Service{
		log:   p.Log.Named("hotel.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req hoteldomain.CreateRequest) (*hoteldomain.Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, hoteldomain.ErrInvalidCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, hoteldomain.ErrInvalidName
	}

	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, hoteldomain.ErrCodeTaken
	}

	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = "USD"
	}
	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	now := time.Now().UTC()
	record := &hoteldomain.Hotel{
		ID:                s.genID.Generate(),
		Code:              code,
		Name:              name,
		CurrencyCode:      currency,
		Timezone:          timezone,
		BreakfastPrice:    req.BreakfastPrice,
		LunchPrice:        req.LunchPrice,
		DinnerPrice:       req.DinnerPrice,
		AllInclusivePrice: req.AllInclusivePrice,
		IsEnabled:         true,
		CreatedAt:         now,
		UpdatedAt:         now,
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

func (s *Service) Get(ctx context.Context, id string) (*hoteldomain.Response, error) {
	hotelID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, hoteldomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, hoteldomain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req hoteldomain.ListRequest) ([]hoteldomain.Response, error) {
	filter := hoteldomain.ListRequest{
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:      strings.TrimSpace(req.Name),
		IsEnabled: req.IsEnabled,
		SortBy:    strings.TrimSpace(req.SortBy),
		OrderBy:   strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]hoteldomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req hoteldomain.UpdateRequest) (*hoteldomain.Response, error) {
	hotelID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, hoteldomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, hoteldomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, hoteldomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.CurrencyCode != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
		if currency != "" {
			item.CurrencyCode = currency
		}
	}
	if req.Timezone != nil {
		timezone := strings.TrimSpace(*req.Timezone)
		if timezone != "" {
			item.Timezone = timezone
		}
	}
	if req.BreakfastPrice != nil {
		item.BreakfastPrice = req.BreakfastPrice
	}
	if req.LunchPrice != nil {
		item.LunchPrice = req.LunchPrice
	}
	if req.DinnerPrice != nil {
		item.DinnerPrice = req.DinnerPrice
	}
	if req.AllInclusivePrice != nil {
		item.AllInclusivePrice = req.AllInclusivePrice
	}

	item.UpdatedAt = time.Now().UTC()
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*hoteldomain.Response, error) {
	hotelID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, hoteldomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, hoteldomain.ErrNotFound
	}

	item.IsEnabled = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func toResponse(hotel *hoteldomain.Hotel) hoteldomain.Response {
	return hoteldomain.Response{
		ID:                hotel.ID.String(),
		Code:              hotel.Code,
		Name:              hotel.Name,
		CurrencyCode:      hotel.CurrencyCode,
		Timezone:          hotel.Timezone,
		BreakfastPrice:    hotel.BreakfastPrice,
		LunchPrice:        hotel.LunchPrice,
		DinnerPrice:       hotel.DinnerPrice,
		AllInclusivePrice: hotel.AllInclusivePrice,
		IsEnabled:         hotel.IsEnabled,
		CreatedAt:         hotel.CreatedAt,
		UpdatedAt:         hotel.UpdatedAt,
	}
}
