package config

import (
	"fmt"
	"strings"

	httpapi "github.com/kingfoodmart/kfm-insights/internal/api/http"
	"github.com/kingfoodmart/kfm-insights/internal/apisrv/insights"
	"github.com/kingfoodmart/kfm-insights/internal/cache"
	"github.com/kingfoodmart/kfm-insights/internal/store"
	"github.com/kingfoodmart/kfm-insights/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	Mongo    store.Config    `mapstructure:"mongo"`
	Logger   log.Config      `mapstructure:"logger"`
	HTTP     httpapi.Config  `mapstructure:"http"`
	Cache    cache.Config    `mapstructure:"cache"`
	Insights insights.Config `mapstructure:"insights"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g., MONGO__URI for mongo.uri
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		// An explicitly named file must exist; only the searched default
		// locations are allowed to be absent.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/kfm-insights")
		viper.AddConfigPath("/etc/kfm-insights")
		// Config file is optional, env vars alone can carry the setup.
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	if config.Mongo.URI == "" {
		return nil, fmt.Errorf("mongo.uri is required")
	}
	if config.Mongo.Database == "" || config.Mongo.Collection == "" {
		return nil, fmt.Errorf("mongo.database and mongo.collection are required")
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys so flat env
// names work alongside the nested MONGO__* style.
func bindEnvVars() {
	// Mongo
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.database", "MONGO_DATABASE")
	viper.BindEnv("mongo.collection", "MONGO_COLLECTION")
	viper.BindEnv("mongo.connect_timeout", "MONGO_CONNECT_TIMEOUT")
	viper.BindEnv("mongo.server_selection_timeout", "MONGO_SERVER_SELECTION_TIMEOUT")
	viper.BindEnv("mongo.fetch_timeout", "MONGO_FETCH_TIMEOUT")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Snapshot cache
	viper.BindEnv("cache.ttl", "CACHE_TTL")

	// Insights
	viper.BindEnv("insights.top_movers", "INSIGHTS_TOP_MOVERS")
}
