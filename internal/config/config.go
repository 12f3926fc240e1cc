// Package config provides application configuration loaded from an optional
// YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate when a setting is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds connection settings for PostgreSQL or SQLite.
type DatabaseConfig struct {
	Driver     string `yaml:"driver" validate:"oneof=postgres sqlite"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port" validate:"gte=0,lte=65535"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	SSLMode    string `yaml:"sslmode"`
	URL        string `yaml:"dsn"`         // overrides the parts above when set
	SQLitePath string `yaml:"sqlite_path"` // used when Driver is sqlite
	Migrations bool   `yaml:"migrations"`
	Debug      bool   `yaml:"debug"`
}

// GeneratorConfig holds the entity counts and value ranges for a generation run.
type GeneratorConfig struct {
	ShopCount           int     `yaml:"shop_count" validate:"gte=0"`
	ClientCount         int     `yaml:"client_count" validate:"gte=0"`
	ProductCount        int     `yaml:"product_count" validate:"gte=0"`
	OrderCount          int     `yaml:"order_count" validate:"gte=0"`
	MaxProductsPerOrder int     `yaml:"max_products_per_order" validate:"gte=0"`
	BatchSize           int     `yaml:"batch_size" validate:"gt=0"`
	Seed                int64   `yaml:"seed"` // 0 picks a random seed
	PriceMin            float64 `yaml:"price_min" validate:"gte=0.01"`
	PriceMax            float64 `yaml:"price_max" validate:"gtefield=PriceMin"`
	VATMax              float64 `yaml:"vat_max" validate:"gte=0,lt=1"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       5432,
			User:       "datawriter",
			Password:   "datawriter",
			DBName:     "datawriter",
			SSLMode:    "disable",
			SQLitePath: "datawriter.db",
		},
		Generator: GeneratorConfig{
			ShopCount:           10,
			ClientCount:         50,
			ProductCount:        100,
			OrderCount:          200,
			MaxProductsPerOrder: 5,
			BatchSize:           100,
			PriceMin:            10,
			PriceMax:            1000,
			VATMax:              0.23,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	db := &c.Database
	db.Driver = strings.ToLower(getEnv("DB_DRIVER", db.Driver))
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnvInt("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.DBName = getEnv("DB_NAME", db.DBName)
	db.SSLMode = getEnv("DB_SSLMODE", db.SSLMode)
	db.URL = getEnv("DATABASE_DSN", db.URL)
	db.SQLitePath = getEnv("SQLITE_PATH", db.SQLitePath)
	db.Migrations = getEnvBool("MIGRATIONS", db.Migrations)
	db.Debug = getEnvBool("DB_DEBUG", db.Debug)

	g := &c.Generator
	g.ShopCount = getEnvInt("SHOP_COUNT", g.ShopCount)
	g.ClientCount = getEnvInt("CLIENT_COUNT", g.ClientCount)
	g.ProductCount = getEnvInt("PRODUCT_COUNT", g.ProductCount)
	g.OrderCount = getEnvInt("ORDER_COUNT", g.OrderCount)
	g.MaxProductsPerOrder = getEnvInt("MAX_PRODUCTS_PER_ORDER", g.MaxProductsPerOrder)
	g.BatchSize = getEnvInt("BATCH_SIZE", g.BatchSize)
	g.Seed = getEnvInt64("GENERATOR_SEED", g.Seed)
	g.PriceMin = getEnvFloat("PRICE_MIN", g.PriceMin)
	g.PriceMax = getEnvFloat("PRICE_MAX", g.PriceMax)
	g.VATMax = getEnvFloat("VAT_MAX", g.VATMax)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", c.Log.Format))
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
