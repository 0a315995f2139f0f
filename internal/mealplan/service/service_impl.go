package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  mealplandomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  mealplandomain.Repository
}

func NewService(p serviceParams) mealplandomain.Service {
	return &Service{
		log:   p.Log.Named("mealplan.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req mealplandomain.CreateRequest) (*mealplandomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, mealplandomain.ErrInvalidHotel
	}

	mealPlan := strings.TrimSpace(req.MealPlan)
	if mealPlan == "" {
		return nil, mealplandomain.ErrInvalidMealPlan
	}

	existing, err := s.repo.FindByName(ctx, hotelID, mealPlan)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, mealplandomain.ErrMealPlanTaken
	}

	now := time.Now().UTC()
	record := &mealplandomain.MealPlanRule{
		ID:        s.genID.Generate(),
		HotelID:   hotelID,
		MealPlan:  mealPlan,
		ShortCode: strings.ToUpper(strings.TrimSpace(req.ShortCode)),
		BreakFast: req.BreakFast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		AI:        req.AI,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
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

func (s *Service) List(ctx context.Context, req mealplandomain.ListRequest) ([]mealplandomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, mealplandomain.ErrInvalidHotel
	}

	filter := mealplandomain.ListRequest{
		MealPlan:  strings.TrimSpace(req.MealPlan),
		ShortCode: strings.ToUpper(strings.TrimSpace(req.ShortCode)),
		IsEnabled: req.IsEnabled,
		SortBy:    strings.TrimSpace(req.SortBy),
		OrderBy:   strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, hotelID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]mealplandomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req mealplandomain.UpdateRequest) (*mealplandomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, mealplandomain.ErrInvalidHotel
	}

	planID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, mealplandomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID, planID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, mealplandomain.ErrNotFound
	}

	if req.MealPlan != nil {
		mealPlan := strings.TrimSpace(*req.MealPlan)
		if mealPlan == "" {
			return nil, mealplandomain.ErrInvalidMealPlan
		}
		if !strings.EqualFold(mealPlan, item.MealPlan) {
			existing, err := s.repo.FindByName(ctx, hotelID, mealPlan)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, mealplandomain.ErrMealPlanTaken
			}
		}
		item.MealPlan = mealPlan
	}
	if req.ShortCode != nil {
		item.ShortCode = strings.ToUpper(strings.TrimSpace(*req.ShortCode))
	}
	if req.BreakFast != nil {
		item.BreakFast = *req.BreakFast
	}
	if req.Lunch != nil {
		item.Lunch = *req.Lunch
	}
	if req.Dinner != nil {
		item.Dinner = *req.Dinner
	}
	if req.AI != nil {
		item.AI = *req.AI
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*mealplandomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, mealplandomain.ErrInvalidHotel
	}

	planID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, mealplandomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID, planID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, mealplandomain.ErrNotFound
	}

	item.IsEnabled = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func toResponse(plan *mealplandomain.MealPlanRule) mealplandomain.Response {
	return mealplandomain.Response{
		ID:        plan.ID.String(),
		HotelID:   plan.HotelID.String(),
		MealPlan:  plan.MealPlan,
		ShortCode: plan.ShortCode,
		BreakFast: plan.BreakFast,
		Lunch:     plan.Lunch,
		Dinner:    plan.Dinner,
		AI:        plan.AI,
		IsEnabled: plan.IsEnabled,
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
}
