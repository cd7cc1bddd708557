package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken     string `env:"BOT_TOKEN,required"`
	DataPath     string `env:"DATA_PATH" envDefault:"data.json"`
	SettingsPath string `env:"SETTINGS_PATH" envDefault:"config.json"`

	// Admin
	AdminIDs      []int64 `env:"ADMIN_IDS" envSeparator:","`
	AdminUsername string  `env:"ADMIN_USERNAME"`

	// Status server
	Port int `env:"PORT" envDefault:"5000"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
