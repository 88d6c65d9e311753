package db

import (
	"fmt" // Error wrapping

	"ecommerce_api/internal/config" // Application configuration

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"   // SQLite driver for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM logger levels
)

// Open connects to the configured database and sizes the connection pool.
// The returned handle is meant to be built once and passed down explicitly.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN()) // PostgreSQL connection
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN()) // MySQL connection
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN()) // SQLite file, single node only
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	gormCfg := &gorm.Config{TranslateError: true} // Unique violations surface as gorm.ErrDuplicatedKey
	if cfg.IsProd {
		gormCfg.Logger = logger.Default.LogMode(logger.Error) // Only log failing statements in production
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := gdb.DB() // Underlying database/sql pool
	if err != nil {
		return nil, fmt.Errorf("access pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns) // Upper bound of open connections
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns) // Idle connections kept warm
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}

	logrus.WithFields(logrus.Fields{
		"driver": cfg.DBDriver, // Database driver
		"host":   cfg.DBHost,   // Database host
		"name":   cfg.DBName,   // Database name
	}).Info("Database connected")
	return gdb, nil
}
