package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/db"
	"github.com/diewo77/go-datawriter/internal/logging"
	"github.com/diewo77/go-datawriter/internal/store"
)

var (
	configFlag       = flag.String("config", "", "Path to an optional YAML config file")
	migrateOnlyFlag  = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	clearOnlyFlag    = flag.Bool("clear-only", false, "Delete all generated data and exit")
	keepFlag         = flag.Bool("keep", false, "Keep existing data instead of clearing it before generating")
	skipGenerateFlag = flag.Bool("skip-generate", false, "Do not generate data, only print outputs")
	reportFlag       = flag.Bool("report", true, "Print the payment method report")
	orderInfoFlag    = flag.Bool("order-info", false, "Print net totals of orders from odd-numbered shops")
	cityFlag         = flag.String("city", "u", "City substring used by -order-info")
	formatFlag       = flag.String("format", "table", "Output format: table or json")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		logging.Setup(config.Default().Log)
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}
	logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Connect(cfg.Database)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return 1
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	// the schema is brought up to date by App.Run
	s, err := store.New(gdb, cfg.Generator.BatchSize, store.WithSQLMigrations(cfg.Database.Migrations))
	if err != nil {
		log.Error().Err(err).Msg("failed to create store")
		return 1
	}

	app, err := NewApp(cfg, s, os.Stdout, Options{
		MigrateOnly:  *migrateOnlyFlag,
		ClearOnly:    *clearOnlyFlag,
		Keep:         *keepFlag,
		SkipGenerate: *skipGenerateFlag,
		Report:       *reportFlag,
		OrderInfo:    *orderInfoFlag,
		City:         *cityFlag,
		Format:       *formatFlag,
	})
	if err != nil {
		log.Error().Err(err).Msg("invalid options")
		return 1
	}

	if err := app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("datawriter failed")
		return 1
	}
	return 0
}
