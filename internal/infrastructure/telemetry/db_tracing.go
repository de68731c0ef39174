package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	LogFullSQL      bool          // keep bound variables in db.statement; never in production
	SlowQueryThresh time.Duration // default 200ms
	DBName          string
}

// DBTracingPlugin is a gorm.Plugin that installs otelgorm spans and
// annotates them with row counts, errors and slow-query markers.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates the plugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "marketplace:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("db_tracing:before_create", markQueryStart),
		cb.Query().Before("gorm:query").Register("db_tracing:before_query", markQueryStart),
		cb.Update().Before("gorm:update").Register("db_tracing:before_update", markQueryStart),
		cb.Delete().Before("gorm:delete").Register("db_tracing:before_delete", markQueryStart),
		cb.Row().Before("gorm:row").Register("db_tracing:before_row", markQueryStart),
		cb.Raw().Before("gorm:raw").Register("db_tracing:before_raw", markQueryStart),
		cb.Create().After("gorm:create").Before("otel:after_create").Register("db_tracing:after_create", p.annotateSpan),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("db_tracing:after_query", p.annotateSpan),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("db_tracing:after_update", p.annotateSpan),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("db_tracing:after_delete", p.annotateSpan),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("db_tracing:after_row", p.annotateSpan),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("db_tracing:after_raw", p.annotateSpan),
	}
	if err := errors.Join(registrations...); err != nil {
		return err
	}

	p.logger.Info("database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

type queryStartKey struct{}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	var elapsed time.Duration
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		elapsed = time.Since(start)
	}
	slow := elapsed > p.config.SlowQueryThresh
	if slow {
		p.logger.Warn("slow query",
			zap.String("table", db.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", db.Statement.RowsAffected),
		)
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
	}
	if slow {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

var _ gorm.Plugin = (*DBTracingPlugin)(nil)
