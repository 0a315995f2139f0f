package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	"github.com/smallbiznis/folio/internal/taxengine"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  taxruledomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  taxruledomain.Repository
}

func NewService(p serviceParams) taxruledomain.Service {
	return &Service{
		log:   p.Log.Named("taxrule.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req taxruledomain.ListRequest) ([]taxruledomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, taxruledomain.ErrInvalidHotel
	}

	filter := taxruledomain.ListRequest{
		TaxName:   strings.TrimSpace(req.TaxName),
		TaxCode:   strings.TrimSpace(req.TaxCode),
		IsEnabled: req.IsEnabled,
		SortBy:    strings.TrimSpace(req.SortBy),
		OrderBy:   strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, hotelID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]taxruledomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Create(ctx context.Context, req taxruledomain.CreateRequest) (*taxruledomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, taxruledomain.ErrInvalidHotel
	}

	taxName := strings.TrimSpace(req.TaxName)
	if taxName == "" {
		return nil, taxruledomain.ErrInvalidTaxName
	}

	existing, err := s.repo.FindByName(ctx, hotelID, taxName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, taxruledomain.ErrTaxNameTaken
	}

	calcBasedOn := strings.TrimSpace(req.CalcBasedOn)
	if calcBasedOn == "" {
		calcBasedOn = "Base"
	}
	if err := s.validateCalcBasedOn(ctx, hotelID, taxName, calcBasedOn); err != nil {
		return nil, err
	}

	accountID, err := parseOptionalID(req.AccountID)
	if err != nil {
		return nil, err
	}

	taxCode := trimPtr(req.TaxCode)

	isEnabled := true
	if req.IsEnabled != nil {
		isEnabled = *req.IsEnabled
	}

	now := time.Now().UTC()
	record := &taxruledomain.TaxRule{
		ID:          s.genID.Generate(),
		HotelID:     hotelID,
		TaxName:     taxName,
		Percentage:  req.Percentage,
		CalcBasedOn: calcBasedOn,
		AccountID:   accountID,
		TaxCode:     taxCode,
		IsEnabled:   isEnabled,
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

func (s *Service) Update(ctx context.Context, req taxruledomain.UpdateRequest) (*taxruledomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, taxruledomain.ErrInvalidHotel
	}

	ruleID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, taxruledomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID, ruleID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, taxruledomain.ErrNotFound
	}

	if req.TaxName != nil {
		taxName := strings.TrimSpace(*req.TaxName)
		if taxName == "" {
			return nil, taxruledomain.ErrInvalidTaxName
		}
		if !strings.EqualFold(taxName, item.TaxName) {
			existing, err := s.repo.FindByName(ctx, hotelID, taxName)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, taxruledomain.ErrTaxNameTaken
			}
		}
		item.TaxName = taxName
	}
	if req.Percentage != nil {
		item.Percentage = *req.Percentage
	}
	if req.CalcBasedOn != nil {
		calcBasedOn := strings.TrimSpace(*req.CalcBasedOn)
		if calcBasedOn == "" {
			return nil, taxruledomain.ErrInvalidCalcBasedOn
		}
		if err := s.validateCalcBasedOn(ctx, hotelID, item.TaxName, calcBasedOn); err != nil {
			return nil, err
		}
		item.CalcBasedOn = calcBasedOn
	}
	if req.AccountID != nil {
		accountID, err := parseOptionalID(req.AccountID)
		if err != nil {
			return nil, err
		}
		item.AccountID = accountID
	}
	if req.TaxCode != nil {
		item.TaxCode = trimPtr(req.TaxCode)
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

func (s *Service) Disable(ctx context.Context, id string) (*taxruledomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, taxruledomain.ErrInvalidHotel
	}

	ruleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, taxruledomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, hotelID, ruleID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, taxruledomain.ErrNotFound
	}

	item.IsEnabled = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

// validateCalcBasedOn surfaces unknown-token and self-reference problems at
// write time instead of leaving them to show up as unresolved rules during
// a night audit.
func (s *Service) validateCalcBasedOn(ctx context.Context, hotelID snowflake.ID, selfName, calcBasedOn string) error {
	rules, err := s.repo.ListEnabled(ctx, hotelID)
	if err != nil {
		return err
	}

	known := map[string]bool{"base": true}
	for _, rule := range rules {
		known[strings.ToLower(strings.TrimSpace(rule.TaxName))] = true
	}

	self := strings.ToLower(strings.TrimSpace(selfName))
	for _, token := range strings.Split(calcBasedOn, "+") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || token == self {
			return taxruledomain.ErrInvalidCalcBasedOn
		}
		if _, ok := taxengine.ParseLayer(token); ok {
			continue
		}
		if !known[token] {
			return taxruledomain.ErrInvalidCalcBasedOn
		}
	}
	return nil
}

func toResponse(rule *taxruledomain.TaxRule) taxruledomain.Response {
	var accountID *string
	if rule.AccountID != nil {
		value := rule.AccountID.String()
		accountID = &value
	}
	return taxruledomain.Response{
		ID:          rule.ID.String(),
		HotelID:     rule.HotelID.String(),
		TaxName:     rule.TaxName,
		Percentage:  rule.Percentage,
		CalcBasedOn: rule.CalcBasedOn,
		AccountID:   accountID,
		TaxCode:     rule.TaxCode,
		IsEnabled:   rule.IsEnabled,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
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
		return nil, taxruledomain.ErrInvalidID
	}
	return &parsed, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
