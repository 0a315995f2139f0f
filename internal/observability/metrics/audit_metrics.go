package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	AuditErrorTypeDeadlineExceeded = "deadline_exceeded"
	AuditErrorTypeBusinessRule     = "business_rule"
	AuditErrorTypeDB               = "db"
	AuditErrorTypeUnknown          = "unknown"
)

const (
	AuditStageLoadRates  = "load_rates"
	AuditStageResolveTax = "resolve_tax"
	AuditStageBuildGL    = "build_gl"
	AuditStagePostLedger = "post_ledger"
	AuditStageWriteAudit = "write_audit"
)

// AuditMetrics captures night audit health signals.
type AuditMetrics struct {
	jobRuns       *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
	jobErrors     *prometheus.CounterVec
	rowsProcessed *prometheus.CounterVec
	stageErrors   *prometheus.CounterVec
	runLoopLag    prometheus.Observer
}

var (
	auditMetricsOnce sync.Once
	auditMetrics     *AuditMetrics
)

// Audit returns the singleton night audit metrics registry.
func Audit() *AuditMetrics {
	return AuditWithConfig(Config{})
}

// AuditWithConfig returns the singleton night audit metrics registry using config labels.
func AuditWithConfig(cfg Config) *AuditMetrics {
	auditMetricsOnce.Do(func() {
		auditMetrics = newAuditMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return auditMetrics
}

// ResetAuditMetricsForTest resets the audit metrics singleton for tests.
func ResetAuditMetricsForTest() {
	auditMetricsOnce = sync.Once{}
	auditMetrics = nil
}

func newAuditMetrics(registerer prometheus.Registerer, cfg Config) *AuditMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "folio"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "folio_audit_job_runs_total",
		Help:        "Night audit job runs by name.",
		ConstLabels: constLabels,
	}, []string{"job"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "folio_audit_job_duration_seconds",
		Help:        "Night audit job latency to protect the posting window.",
		Buckets:     []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300},
		ConstLabels: constLabels,
	}, []string{"job"})
	jobErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "folio_audit_job_errors_total",
		Help:        "Night audit job errors by low-cardinality type.",
		ConstLabels: constLabels,
	}, []string{"job", "error_type"})
	rowsProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "folio_audit_rows_processed_total",
		Help:        "Rate check rows processed per job to gauge audit throughput.",
		ConstLabels: constLabels,
	}, []string{"job"})
	stageErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "folio_audit_stage_errors_total",
		Help:        "Night audit errors by stage for faster incident isolation.",
		ConstLabels: constLabels,
	}, []string{"stage", "error_type"})
	runLoopLag := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "folio_audit_runloop_lag_seconds",
		Help:        "Scheduler run loop lag beyond the configured interval.",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		ConstLabels: constLabels,
	})

	registerer.MustRegister(
		jobRuns,
		jobDuration,
		jobErrors,
		rowsProcessed,
		stageErrors,
		runLoopLag,
	)

	return &AuditMetrics{
		jobRuns:       jobRuns,
		jobDuration:   jobDuration,
		jobErrors:     jobErrors,
		rowsProcessed: rowsProcessed,
		stageErrors:   stageErrors,
		runLoopLag:    runLoopLag,
	}
}

// IncJobRun increments the run counter for an audit job.
func (m *AuditMetrics) IncJobRun(job string) {
	if m == nil || m.jobRuns == nil {
		return
	}
	m.jobRuns.WithLabelValues(job).Inc()
}

// ObserveJobDuration records audit job latency in seconds.
func (m *AuditMetrics) ObserveJobDuration(job string, duration time.Duration) {
	if m == nil || m.jobDuration == nil {
		return
	}
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// IncJobError increments the audit job error counter with classification.
func (m *AuditMetrics) IncJobError(job string, err error) {
	if m == nil || err == nil || m.jobErrors == nil {
		return
	}
	m.jobErrors.WithLabelValues(job, ClassifyAuditErrorType(err)).Inc()
}

// AddRowsProcessed increments the processed row counter for a job by count.
func (m *AuditMetrics) AddRowsProcessed(job string, count int) {
	if m == nil || count <= 0 || m.rowsProcessed == nil {
		return
	}
	m.rowsProcessed.WithLabelValues(job).Add(float64(count))
}

// IncStageError increments audit errors by stage and type.
func (m *AuditMetrics) IncStageError(stage string, err error) {
	if m == nil || err == nil || m.stageErrors == nil {
		return
	}
	m.stageErrors.WithLabelValues(stage, ClassifyAuditErrorType(err)).Inc()
}

// ObserveRunLoopLag records lag between the scheduled tick and actual run start.
func (m *AuditMetrics) ObserveRunLoopLag(duration time.Duration) {
	if m == nil || m.runLoopLag == nil {
		return
	}
	lag := duration
	if lag < 0 {
		lag = 0
	}
	m.runLoopLag.Observe(lag.Seconds())
}

// ClassifyAuditErrorType maps audit errors to a low-cardinality error type.
func ClassifyAuditErrorType(err error) string {
	if err == nil {
		return AuditErrorTypeUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return AuditErrorTypeDeadlineExceeded
	}
	if isDBError(err) {
		return AuditErrorTypeDB
	}
	return AuditErrorTypeBusinessRule
}

func isDBError(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	return errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidData) ||
		errors.Is(err, gorm.ErrMissingWhereClause) ||
		errors.Is(err, gorm.ErrUnsupportedDriver) ||
		errors.Is(err, gorm.ErrInvalidValue) ||
		errors.Is(err, gorm.ErrDuplicatedKey)
}
