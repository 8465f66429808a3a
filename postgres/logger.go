package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger implements gorm's logger.Interface on top of zap.
type GormLogger struct {
	log *zap.SugaredLogger
}

func NewGormLogger(log *zap.SugaredLogger) *GormLogger {
	return &GormLogger{log: log.With("component", "gorm")}
}

func (l *GormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	l.log.Infow(msg, "data", data)
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	l.log.Warnw(msg, "data", data)
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	l.log.Errorw(msg, "data", data)
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Errorw("gorm error", "error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case elapsed > slowQueryThreshold:
		l.log.Warnw("gorm slow query", "sql", sql, "rows", rows, "elapsed", elapsed)
	default:
		l.log.Debugw("gorm query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
