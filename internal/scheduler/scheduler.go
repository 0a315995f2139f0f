// Package scheduler runs the night audit automatically: once a hotel's
// local clock passes its audit hour, the previous business date is built
// and posted unless a posting for that date already exists.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/folio/internal/clock"
	"github.com/smallbiznis/folio/internal/config"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
	obsmetrics "github.com/smallbiznis/folio/internal/observability/metrics"
)

const jobNightAudit = "night_audit"

var ErrInvalidConfig = errors.New("scheduler: missing dependencies")

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	Holder        *config.NightAuditConfigHolder
	Hotels        hoteldomain.Repository
	NightAuditSvc nightauditdomain.Service
	Config        Config `optional:"true"`
}

type Scheduler struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      Config
	clock    clock.Clock
	holder   *config.NightAuditConfigHolder
	hotels   hoteldomain.Repository
	auditSvc nightauditdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.Holder == nil || p.Hotels == nil || p.NightAuditSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:       p.DB,
		log:      p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:      p.Config.withDefaults(),
		clock:    p.Clock,
		holder:   p.Holder,
		hotels:   p.Hotels,
		auditSvc: p.NightAuditSvc,
	}, nil
}

// RunOnce sweeps every enabled hotel once.
func (s *Scheduler) RunOnce(parent context.Context) error {
	metrics := obsmetrics.Audit()
	metrics.IncJobRun(jobNightAudit)
	start := time.Now()
	defer func() { metrics.ObserveJobDuration(jobNightAudit, time.Since(start)) }()

	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	enabled := true
	hotels, err := s.hotels.List(ctx, hoteldomain.ListRequest{IsEnabled: &enabled})
	if err != nil {
		metrics.IncStageError(obsmetrics.AuditStageLoadRates, err)
		metrics.IncJobError(jobNightAudit, err)
		return err
	}

	var jobErr error
	for i := range hotels {
		if ctx.Err() != nil {
			jobErr = errors.Join(jobErr, ctx.Err())
			break
		}
		if err := s.runHotel(ctx, &hotels[i]); err != nil {
			jobErr = errors.Join(jobErr, err)
		}
	}

	if jobErr != nil {
		metrics.IncJobError(jobNightAudit, jobErr)
	}
	return jobErr
}

// RunForever ticks RunOnce at the configured interval until ctx is done.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()
	nextRun := time.Now().Add(s.cfg.RunInterval)
	metrics := obsmetrics.Audit()

	for {
		if lag := time.Since(nextRun); lag > 0 {
			metrics.ObserveRunLoopLag(lag)
		}
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("night audit sweep failed", zap.Error(err))
		}
		nextRun = nextRun.Add(s.cfg.RunInterval)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runHotel(ctx context.Context, hotel *hoteldomain.Hotel) error {
	metrics := obsmetrics.Audit()
	log := s.log.With(
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("hotel_code", hotel.Code),
	)

	loc, err := time.LoadLocation(hotel.Timezone)
	if err != nil {
		log.Warn("unknown hotel timezone, assuming UTC", zap.String("timezone", hotel.Timezone))
		loc = time.UTC
	}

	localNow := s.clock.Now().In(loc)
	businessDate := eligibleBusinessDate(localNow, s.holder.Get().AuditHour)

	posted, err := s.alreadyPosted(ctx, hotel.ID, businessDate)
	if err != nil {
		metrics.IncStageError(obsmetrics.AuditStagePostLedger, err)
		return err
	}
	if posted {
		return nil
	}

	hctx := hotelcontext.WithHotelID(ctx, int64(hotel.ID))
	resp, err := s.auditSvc.Run(hctx, nightauditdomain.RunRequest{
		BusinessDate: businessDate.Format("2006-01-02"),
	})
	switch {
	case errors.Is(err, nightauditdomain.ErrNoRateCheckRows):
		return nil
	case errors.Is(err, nightauditdomain.ErrUnresolvedTaxRules):
		metrics.IncStageError(obsmetrics.AuditStageResolveTax, err)
		log.Warn("night audit blocked by unresolved tax rules",
			zap.String("business_date", businessDate.Format("2006-01-02")),
		)
		return err
	case err != nil:
		metrics.IncStageError(obsmetrics.AuditStagePostLedger, err)
		log.Warn("night audit run failed",
			zap.String("business_date", businessDate.Format("2006-01-02")),
			zap.Error(err),
		)
		return err
	}

	metrics.AddRowsProcessed(jobNightAudit, resp.Rows)
	log.Info("night audit posted automatically",
		zap.String("business_date", businessDate.Format("2006-01-02")),
		zap.Int("rows", resp.Rows),
		zap.Int("posted", resp.Posted),
		zap.Int("skipped", resp.Skipped),
	)
	return nil
}

// eligibleBusinessDate picks the latest business date that may be posted
// at the given local time. Before the audit hour the previous night is
// still open, so only the night before that is eligible.
func eligibleBusinessDate(localNow time.Time, auditHour int) time.Time {
	daysBack := 1
	if localNow.Hour() < auditHour {
		daysBack = 2
	}
	date := localNow.AddDate(0, 0, -daysBack)
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Scheduler) alreadyPosted(ctx context.Context, hotelID snowflake.ID, businessDate time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(1)
		 FROM gl_transactions
		 WHERE hotel_id = ? AND tran_date = ? AND source_type = ?`,
		hotelID,
		businessDate,
		"night_audit",
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
