package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort              string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL           string `env:"DATABASE_URL"`
	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB" envDefault:"0"`
	CatalogPath           string `env:"CATALOG_PATH"`
	SessionTTLMinutes     int    `env:"SESSION_TTL_MINUTES" envDefault:"1440"`
	SessionTokenSecret    string `env:"SESSION_TOKEN_SECRET"`
	MessageRateLimit      int    `env:"MESSAGE_RATE_LIMIT" envDefault:"30"`
	MessageRateWindowSecs int    `env:"MESSAGE_RATE_WINDOW_SECONDS" envDefault:"60"`
	DefaultTimeCommitment string `env:"DEFAULT_TIME_COMMITMENT" envDefault:"1 hour"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SessionTTL devuelve la vida de una conversación; nunca menor a un minuto.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return time.Minute
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) RateWindow() time.Duration {
	if c.MessageRateWindowSecs <= 0 {
		return time.Minute
	}
	return time.Duration(c.MessageRateWindowSecs) * time.Second
}
