package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/go-datawriter/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Tables lists the schema tables in dependency order.
var Tables = []string{"shops", "clients", "products", "orders", "order_products"}

// AutoMigrate creates or updates the tables from the model definitions.
// Parents come before the tables that reference them.
func AutoMigrate(gdb *gorm.DB) error {
	for _, m := range []any{&models.Shop{}, &models.Client{}, &models.Product{}, &models.Order{}, &models.OrderProduct{}} {
		if err := gdb.AutoMigrate(m); err != nil {
			return fmt.Errorf("db: automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Migrate brings the schema up to date. Versioned SQL migrations are used
// when sqlMigrations is set on postgres, AutoMigrate otherwise.
func Migrate(gdb *gorm.DB, sqlMigrations bool) error {
	if sqlMigrations && gdb.Dialector.Name() == "postgres" {
		if err := runSQLMigrations(gdb); err != nil {
			return fmt.Errorf("db: sql migrations: %w", err)
		}
	} else if err := AutoMigrate(gdb); err != nil {
		return err
	}

	for _, table := range Tables {
		if !gdb.Migrator().HasTable(table) {
			return errors.New("db: missing table after migration: " + table)
		}
	}
	return nil
}

// runSQLMigrations applies the embedded migrations over the open connection.
// The migrate instance is not closed since that would close the shared pool.
func runSQLMigrations(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("no new migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Msg("migrations applied")
	return nil
}
