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

	JWTSecret   string        `env:"JWT_SECRET, required"`
	JWTIssuer   string        `env:"JWT_ISSUER,   default=jobboard-api"`
	JWTAudience string        `env:"JWT_AUDIENCE, default=jobboard-clients"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`

	UploadDir     string        `env:"UPLOAD_DIR,     default=uploads"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL, default=1h"`
	SweepGrace    time.Duration `env:"SWEEP_GRACE,    default=60s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing JWT_SECRET is fatal here, not per-request.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
