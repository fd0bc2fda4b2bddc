package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "sellerdesk"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "SELLERDESK_APP_ENV"
	EnvPort     = "SELLERDESK_APP_PORT"
	EnvSeedPath = "SELLERDESK_SEED_PATH"
)

type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Seed SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SELLERDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"SELLERDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SELLERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SELLERDESK_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"SELLERDESK_TIMEZONE" default:"Local"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout  time.Duration `envconfig:"SELLERDESK_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SELLERDESK_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"SELLERDESK_HTTP_IDLE_TIMEOUT" default:"60s"`
}

type SeedConfig struct {
	Path string `envconfig:"SELLERDESK_SEED_PATH"`
}
