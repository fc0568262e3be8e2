package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server struct {
		Port int `envconfig:"VIVAH_PORT" default:"8080"`
	}

	DB struct {
		Path string `envconfig:"VIVAH_DB_PATH" default:"vivah.db"`
	}

	Log struct {
		Level string `envconfig:"VIVAH_LOG_LEVEL" default:"info"`
	}

	Backup struct {
		// Dir empty disables scheduled backups entirely.
		Dir           string `envconfig:"VIVAH_BACKUP_DIR" default:""`
		Hour          int    `envconfig:"VIVAH_BACKUP_HOUR" default:"3"`
		RetentionDays int    `envconfig:"VIVAH_BACKUP_RETENTION_DAYS" default:"30"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Backup.Hour < 0 || cfg.Backup.Hour > 23 {
		return nil, fmt.Errorf("backup hour %d out of range", cfg.Backup.Hour)
	}

	return &cfg, nil
}
