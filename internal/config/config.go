package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Bloomdesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"bloomdesk"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	// Push keys are optional on purpose: they are only checked when a push is
	// actually sent, so a deployment without push configured still runs.
	Push struct {
		VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY"`
		VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY"`
		Subscriber      string `envconfig:"VAPID_SUBSCRIBER" default:"mailto:admin@bloomdesk.local"`
	}

	Photos struct {
		Dir     string `envconfig:"PHOTOS_DIR" default:"./data/photos"`
		BaseURL string `envconfig:"PHOTOS_BASE_URL" default:"http://localhost:8080/photos"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
