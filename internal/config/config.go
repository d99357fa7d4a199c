// Package config loads runtime settings from the environment.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName string
	Env     string
	Port    string

	DatabaseDriver string // postgres or sqlite
	DatabaseDSN    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	PasswordResetTimeout  time.Duration
	PasswordResetCooldown time.Duration
	FrontendURL           string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL        string
	RabbitMQEmailQueue string

	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	RateLimitPerMinute int
	RateLimitBurst     int

	SeedSuperuserEmail    string
	SeedSuperuserPassword string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "storefront")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=storefront port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_ACCESS_TTL", "24h")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("PASSWORD_RESET_TIMEOUT", "72h")
	v.SetDefault("PASSWORD_RESET_COOLDOWN", "1m")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000/")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EMAIL_QUEUE", "email_queue")
	v.SetDefault("MAILGUN_DOMAIN", "")
	v.SetDefault("MAILGUN_API_KEY", "")
	v.SetDefault("MAILGUN_SENDER", "")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("SEED_SUPERUSER_EMAIL", "admin@example.com")
	v.SetDefault("SEED_SUPERUSER_PASSWORD", "")
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("APP_NAME"),
		Env:     strings.ToLower(v.GetString("APP_ENV")),
		Port:    v.GetString("APP_PORT"),

		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),

		JWTSecret:       v.GetString("JWT_SECRET"),
		AccessTokenTTL:  v.GetDuration("JWT_ACCESS_TTL"),
		RefreshTokenTTL: v.GetDuration("JWT_REFRESH_TTL"),

		PasswordResetTimeout:  v.GetDuration("PASSWORD_RESET_TIMEOUT"),
		PasswordResetCooldown: v.GetDuration("PASSWORD_RESET_COOLDOWN"),
		FrontendURL:           v.GetString("FRONTEND_URL"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		RabbitMQEmailQueue: v.GetString("RABBITMQ_EMAIL_QUEUE"),

		MailgunDomain: v.GetString("MAILGUN_DOMAIN"),
		MailgunAPIKey: v.GetString("MAILGUN_API_KEY"),
		MailgunSender: v.GetString("MAILGUN_SENDER"),

		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),

		SeedSuperuserEmail:    v.GetString("SEED_SUPERUSER_EMAIL"),
		SeedSuperuserPassword: v.GetString("SEED_SUPERUSER_PASSWORD"),
	}
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
