package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const rateDateLayout = "2006-01-02"

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  ratecheckdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  ratecheckdomain.Repository
}

func NewService(p serviceParams) ratecheckdomain.Service {
	return &Service{
		log:   p.Log.Named("ratecheck.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Ingest(ctx context.Context, req ratecheckdomain.IngestRequest) (*ratecheckdomain.IngestResponse, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, ratecheckdomain.ErrInvalidHotel
	}
	if len(req.Rows) == 0 {
		return nil, ratecheckdomain.ErrEmptyBatch
	}

	now := time.Now().UTC()
	rows := make([]ratecheckdomain.RateCheckRow, 0, len(req.Rows))
	for _, in := range req.Rows {
		detailID, err := snowflake.ParseString(strings.TrimSpace(in.ReservationDetailID))
		if err != nil {
			return nil, ratecheckdomain.ErrInvalidReservationDetail
		}
		var reservationID snowflake.ID
		if trimmed := strings.TrimSpace(in.ReservationID); trimmed != "" {
			reservationID, err = snowflake.ParseString(trimmed)
			if err != nil {
				return nil, ratecheckdomain.ErrInvalidReservationDetail
			}
		}
		rateDate, err := time.ParseInLocation(rateDateLayout, strings.TrimSpace(in.RateDate), time.UTC)
		if err != nil {
			return nil, ratecheckdomain.ErrInvalidRateDate
		}

		row := ratecheckdomain.RateCheckRow{
			ID:                  s.genID.Generate(),
			HotelID:             hotelID,
			ReservationID:       reservationID,
			ReservationDetailID: detailID,
			RateDate:            rateDate,
			MealPlan:            strings.TrimSpace(in.MealPlan),
			RoomType:            strings.TrimSpace(in.RoomType),
			RoomNo:              strings.TrimSpace(in.RoomNo),
			GuestName:           strings.TrimSpace(in.GuestName),
			NetRate:             in.NetRate,
			Adult:               in.Adult,
			Child:               in.Child,
			IsFOC:               in.IsFOC,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := row.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := s.repo.ReplaceBatch(ctx, rows); err != nil {
		return nil, err
	}

	s.log.Info("rate check rows ingested",
		zap.String("hotel_id", hotelID.String()),
		zap.Int("rows", len(rows)),
	)
	return &ratecheckdomain.IngestResponse{Ingested: len(rows)}, nil
}

func (s *Service) ListByDate(ctx context.Context, rateDate time.Time) ([]ratecheckdomain.Response, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, ratecheckdomain.ErrInvalidHotel
	}
	if rateDate.IsZero() {
		return nil, ratecheckdomain.ErrInvalidRateDate
	}

	items, err := s.repo.ListByDate(ctx, hotelID, rateDate)
	if err != nil {
		return nil, err
	}

	resp := make([]ratecheckdomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func toResponse(row *ratecheckdomain.RateCheckRow) ratecheckdomain.Response {
	return ratecheckdomain.Response{
		ID:                  row.ID.String(),
		HotelID:             row.HotelID.String(),
		ReservationID:       row.ReservationID.String(),
		ReservationDetailID: row.ReservationDetailID.String(),
		RateDate:            row.RateDate.Format(rateDateLayout),
		MealPlan:            row.MealPlan,
		RoomType:            row.RoomType,
		RoomNo:              row.RoomNo,
		GuestName:           row.GuestName,
		NetRate:             row.NetRate,
		Adult:               row.Adult,
		Child:               row.Child,
		IsFOC:               row.IsFOC,
		CreatedAt:           row.CreatedAt,
	}
}
