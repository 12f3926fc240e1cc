// Package db opens the database and brings its schema up to date.
package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-datawriter/internal/config"
)

// Retry settings for Connect. Postgres may still be starting when we run.
var (
	ConnectAttempts = 10
	ConnectDelay    = 2 * time.Second
)

// Connect opens the configured database, retrying while it is unreachable.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, dsn, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var gdb *gorm.DB
	for i := 0; i < ConnectAttempts; i++ {
		gdb, err = gorm.Open(dialector, gcfg)
		if err == nil {
			err = gdb.Exec("SELECT 1").Error
		}
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("of", ConnectAttempts).Msg("database not reachable, retrying")
		time.Sleep(ConnectDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("db: connect after %d attempts: %w", ConnectAttempts, err)
	}

	log.Info().Str("driver", cfg.Driver).Str("dsn", MaskDSN(dsn)).Msg("connected to database")
	return gdb, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case "postgres", "":
		dsn := NormalizeDSN(cfg.DSN())
		if dsn == "" {
			return nil, "", fmt.Errorf("db: empty postgres DSN")
		}
		return postgres.Open(dsn), dsn, nil
	case "sqlite":
		dsn := SQLiteDSN(cfg.SQLitePath)
		return sqlite.Open(dsn), dsn, nil
	default:
		return nil, "", fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}
}
