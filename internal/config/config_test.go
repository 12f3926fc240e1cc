package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	g := cfg.Generator
	assert.Equal(t, 10, g.ShopCount)
	assert.Equal(t, 50, g.ClientCount)
	assert.Equal(t, 100, g.ProductCount)
	assert.Equal(t, 200, g.OrderCount)
	assert.Equal(t, 5, g.MaxProductsPerOrder)
	assert.Equal(t, 100, g.BatchSize)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datawriter.yaml")
	content := []byte(`
database:
  driver: sqlite
  sqlite_path: file.db
generator:
  shop_count: 3
  order_count: 7
log:
  format: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("ORDER_COUNT", "42")
	t.Setenv("VAT_MAX", "0.1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file.db", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Generator.ShopCount)
	assert.Equal(t, 42, cfg.Generator.OrderCount)
	assert.Equal(t, 50, cfg.Generator.ClientCount)
	assert.InDelta(t, 0.1, cfg.Generator.VATMax, 1e-9)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative shop count", func(c *Config) { c.Generator.ShopCount = -1 }},
		{"negative max products", func(c *Config) { c.Generator.MaxProductsPerOrder = -2 }},
		{"zero batch size", func(c *Config) { c.Generator.BatchSize = 0 }},
		{"vat of one", func(c *Config) { c.Generator.VATMax = 1 }},
		{"price min rounds to zero", func(c *Config) { c.Generator.PriceMin = 0.001 }},
		{"price max below min", func(c *Config) { c.Generator.PriceMax = 5 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())

	edge := Default()
	edge.Generator.VATMax = 0.999
	edge.Generator.PriceMin, edge.Generator.PriceMax = 0.01, 0.01
	assert.NoError(t, edge.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := Default().Database
	assert.Equal(t, "host=localhost port=5432 user=datawriter password=datawriter dbname=datawriter sslmode=disable", d.DSN())

	d.URL = "postgres://u:p@db:5432/x?sslmode=disable"
	assert.Equal(t, d.URL, d.DSN())
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG_A", "YES")
	t.Setenv("FLAG_B", "0")
	assert.True(t, getEnvBool("FLAG_A", false))
	assert.False(t, getEnvBool("FLAG_B", true))
	assert.True(t, getEnvBool("FLAG_UNSET_X", true))
}
