package database

import (
	"strings"
	"time"

	"dailyreminder/internal/pkg/logger"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapWriter lets gorm's logger print through zap.
type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

func newGormLogger(log logger.Logger, level string) gormlogger.Interface {
	return gormlogger.New(
		zapWriter{log: log.Zap().Named("gorm").Sugar()},
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  parseGormLevel(level),
			IgnoreRecordNotFoundError: true, // Get treats a missing row as "not set"
			Colorful:                  false,
		},
	)
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
