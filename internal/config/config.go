package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// sentry
	SentryEnabled bool `toml:"sentry_enabled"`
	// storage: which keyvalue store backend to use [redis | postgres | memory]
	StorageBackend string `toml:"storage_backend"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// offline cache in front of the keyvalue store
	OfflineCacheEnabled bool `toml:"offline_cache_enabled"`
	OfflineCacheSizeMB  int  `toml:"offline_cache_size_mb"`
	// prometheus metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// rate limiting for mutating routes
	CommandsRateLimitAllowedPerMin int `toml:"commands_rate_limit_allowed_per_min"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s not set", env)
	}

	cfg.Environment = env
	return cfg, nil
}
