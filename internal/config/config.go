package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN         string `env:"DATABASE_DSN,required=true"`
	WhatsAppAPIURL      string `env:"WHATSAPP_API_URL,required=true"`
	WhatsAppAPIToken    string `env:"WHATSAPP_API_TOKEN"`
	RedisURL            string `env:"REDIS_URL"`
	LoginMaxAttempts    int    `env:"LOGIN_MAX_ATTEMPTS,default=5"`
	LoginLockoutMinutes int    `env:"LOGIN_LOCKOUT_MINUTES,default=15"`
	BcryptCost          int    `env:"BCRYPT_COST,default=12"`
	APIPort             int    `env:"API_PORT,default=8080"`
	LogLevel            string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
