package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Port      int    `envconfig:"HEARTH_PORT" default:"8080"`
		LogLevel  string `envconfig:"HEARTH_LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"HEARTH_LOG_FORMAT" default:"text"`
	}

	DB struct {
		Path string `envconfig:"HEARTH_DB_PATH" default:"hearth.db"`
	}

	Session struct {
		TTL time.Duration `envconfig:"HEARTH_SESSION_TTL" default:"720h"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}
	return &cfg, nil
}
