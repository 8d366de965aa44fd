package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and tunes the database backend.
type Config struct {
	Driver   string // sqlite|postgres
	DSN      string // file path for sqlite, connection string for postgres
	LogLevel string // silent|error|warn|info
}

// Open connects to the configured database and creates the schema if absent.
// The caller owns the returned handle and must release it with Close.
func Open(cfg Config, log logger.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", appErrors.ErrDatabaseOperation, cfg.Driver, err)
	}

	if driverName(cfg.Driver) == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
		// SQLite is a single-writer engine.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := AutoMigrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	log.Info("database ready", zap.String("driver", driverName(cfg.Driver)))
	return db, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch driverName(cfg.Driver) {
	case DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("%w: sqlite DSN is required", appErrors.ErrInvalidConfig)
		}
		if dir := filepath.Dir(sqlitePath(dsn)); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: create db dir: %v", appErrors.ErrDatabaseOperation, err)
			}
		}
		return sqlite.Open(withSQLitePragmas(dsn)), nil
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("%w: postgres DSN is required", appErrors.ErrInvalidConfig)
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: unknown database driver %q", appErrors.ErrInvalidConfig, cfg.Driver)
	}
}

func driverName(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	switch d {
	case "", "sqlite3":
		return DriverSQLite
	case "postgresql", "pg":
		return DriverPostgres
	}
	return d
}

// withSQLitePragmas turns on WAL and a busy timeout unless the DSN already sets them.
func withSQLitePragmas(dsn string) string {
	params := []string{}
	if !strings.Contains(dsn, "_journal_mode") {
		params = append(params, "_journal_mode=WAL")
	}
	if !strings.Contains(dsn, "_busy_timeout") {
		params = append(params, "_busy_timeout=5000")
	}
	if !strings.Contains(dsn, "_synchronous") {
		params = append(params, "_synchronous=NORMAL")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func sqlitePath(dsn string) string {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	return path
}

// AutoMigrate creates or updates the schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Schedule{}); err != nil {
		return fmt.Errorf("%w: schema migration failed: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

// Close closes the database connection if it's open.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: failed to get underlying *sql.DB: %v", appErrors.ErrDatabaseOperation, err)
	}
	return sqlDB.Close()
}
