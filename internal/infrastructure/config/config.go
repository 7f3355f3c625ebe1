package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Uploads   UploadConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=greenpact"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=noreply@greenpact.example"`
	FromName string `env:"SMTP_FROM_NAME, default=Greenpact Consulting"`
	TLS      bool   `env:"SMTP_TLS, default=true"`
}

// UploadConfig selects where uploaded files live. Driver "disk" serves
// files from Dir through the static uploads route; driver "s3" stores them
// in the configured bucket instead.
type UploadConfig struct {
	Driver string `env:"UPLOAD_DRIVER, default=disk"`
	Dir    string `env:"UPLOAD_DIR,    default=uploads"`

	S3Region    string `env:"UPLOAD_S3_REGION, default=us-east-1"`
	S3Bucket    string `env:"UPLOAD_S3_BUCKET"`
	S3Endpoint  string `env:"UPLOAD_S3_ENDPOINT"`
	S3AccessKey string `env:"UPLOAD_S3_ACCESS_KEY"`
	S3SecretKey string `env:"UPLOAD_S3_SECRET_KEY"`
}

// RateLimitConfig gates how often one address can request a verification
// code.
type RateLimitConfig struct {
	OTPLimit  int           `env:"OTP_RATE_LIMIT,  default=3"`
	OTPWindow time.Duration `env:"OTP_RATE_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
