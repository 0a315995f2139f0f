package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/folio/internal/audit"
	auditdomain "github.com/smallbiznis/folio/internal/audit/domain"
	"github.com/smallbiznis/folio/internal/config"
	"github.com/smallbiznis/folio/internal/hotel"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	"github.com/smallbiznis/folio/internal/ledger"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	"github.com/smallbiznis/folio/internal/mealplan"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	"github.com/smallbiznis/folio/internal/nightaudit"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
	"github.com/smallbiznis/folio/internal/observability"
	obsmiddleware "github.com/smallbiznis/folio/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/folio/internal/observability/metrics"
	obstracing "github.com/smallbiznis/folio/internal/observability/tracing"
	"github.com/smallbiznis/folio/internal/ratecheck"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	"github.com/smallbiznis/folio/internal/roomtype"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	"github.com/smallbiznis/folio/internal/taxrule"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	audit.Module,
	hotel.Module,
	taxrule.Module,
	roomtype.Module,
	mealplan.Module,
	ratecheck.Module,
	ledger.Module,
	nightaudit.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	hotelSvc      hoteldomain.Service
	taxRuleSvc    taxruledomain.Service
	roomTypeSvc   roomtypedomain.Service
	mealPlanSvc   mealplandomain.Service
	rateCheckSvc  ratecheckdomain.Service
	ledgerSvc     ledgerdomain.Service
	nightAuditSvc nightauditdomain.Service
	auditSvc      auditdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	HotelSvc      hoteldomain.Service
	TaxRuleSvc    taxruledomain.Service
	RoomTypeSvc   roomtypedomain.Service
	MealPlanSvc   mealplandomain.Service
	RateCheckSvc  ratecheckdomain.Service
	LedgerSvc     ledgerdomain.Service
	NightAuditSvc nightauditdomain.Service
	AuditSvc      auditdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		hotelSvc:      p.HotelSvc,
		taxRuleSvc:    p.TaxRuleSvc,
		roomTypeSvc:   p.RoomTypeSvc,
		mealPlanSvc:   p.MealPlanSvc,
		rateCheckSvc:  p.RateCheckSvc,
		ledgerSvc:     p.LedgerSvc,
		nightAuditSvc: p.NightAuditSvc,
		auditSvc:      p.AuditSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Hotels --------
	api.GET("/hotels", s.ListHotels)
	api.POST("/hotels", s.CreateHotel)
	api.GET("/hotels/:hotel_id", s.GetHotelByID)
	api.PATCH("/hotels/:hotel_id", s.UpdateHotel)
	api.POST("/hotels/:hotel_id/disable", s.DisableHotel)

	// Everything below operates on a single property.
	scoped := api.Group("/hotels/:hotel_id", s.HotelScope())

	// -------- Tax Rules --------
	scoped.GET("/tax_rules", s.ListTaxRules)
	scoped.POST("/tax_rules", s.CreateTaxRule)
	scoped.PATCH("/tax_rules/:id", s.UpdateTaxRule)
	scoped.POST("/tax_rules/:id/disable", s.DisableTaxRule)

	// -------- Room Types --------
	scoped.GET("/room_types", s.ListRoomTypes)
	scoped.POST("/room_types", s.CreateRoomType)
	scoped.PATCH("/room_types/:id", s.UpdateRoomType)
	scoped.POST("/room_types/:id/disable", s.DisableRoomType)

	// -------- Meal Plans --------
	scoped.GET("/meal_plans", s.ListMealPlans)
	scoped.POST("/meal_plans", s.CreateMealPlan)
	scoped.PATCH("/meal_plans/:id", s.UpdateMealPlan)
	scoped.POST("/meal_plans/:id/disable", s.DisableMealPlan)

	// -------- Chart of Accounts --------
	scoped.GET("/ledger_accounts", s.ListLedgerAccounts)
	scoped.POST("/ledger_accounts", s.CreateLedgerAccount)

	// -------- Rate Checks --------
	scoped.POST("/rate_checks", s.IngestRateChecks)
	scoped.GET("/rate_checks", s.ListRateChecks)

	// -------- Night Audit --------
	scoped.POST("/night_audit/preview", s.PreviewNightAudit)
	scoped.POST("/night_audit/run", s.RunNightAudit)

	// -------- Audit Logs --------
	scoped.GET("/audit_logs", s.ListAuditLogs)
}
