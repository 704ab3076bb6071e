package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	App   AppConfig
	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Mail  MailQueueConfig
}

type AppConfig struct {
	// BaseURL is the externally reachable address used to build the
	// verification link in outgoing mail.
	BaseURL string `env:"APP_BASE_URL, default=http://localhost:8080"`
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET,   default=default-secret-key-at-least-32-chars-long"`
	Issuer   string        `env:"JWT_ISSUER,   default=UserManagementApp"`
	Audience string        `env:"JWT_AUDIENCE, default=UserManagementAppUsers"`
	TTL      time.Duration `env:"JWT_TTL,      default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=noreply@usermanagement.com"`
}

type MailQueueConfig struct {
	Workers int `env:"MAIL_WORKERS, default=4"`
	Retries int `env:"MAIL_RETRIES, default=3"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
