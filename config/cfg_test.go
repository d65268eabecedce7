package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `
[mongo]
uri = "mongodb://localhost:27017"
database = "kfm"
collection = "products"
fetch_timeout = "90s"

[logger]
level = -4
add_source = true

[http]
port = "8080"
allowed_origins = ["http://localhost:3000"]

[cache]
ttl = "10m"

[insights]
top_movers = 7
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "kfm", cfg.Mongo.Database)
	assert.Equal(t, "products", cfg.Mongo.Collection)
	assert.Equal(t, 90*time.Second, cfg.Mongo.FetchTimeout)
	assert.Equal(t, -4, cfg.Logger.Level)
	assert.True(t, cfg.Logger.AddSource)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 7, cfg.Insights.TopMovers)
}

func TestLoadConfig_MissingMongoSettings(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `
[mongo]
uri = "mongodb://localhost:27017"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.database")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `
[mongo]
uri = "mongodb://file:27017"
database = "kfm"
collection = "products"
`)

	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("MONGO_DATABASE", "kfm")
	t.Setenv("MONGO_COLLECTION", "products")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "kfm", cfg.Mongo.Database)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("MONGO_DATABASE", "kfm")
	t.Setenv("MONGO_COLLECTION", "products")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
