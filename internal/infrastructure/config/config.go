package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=2h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Admin  AdminConfig
	Client ClientConfig

	// LoginRateLimit caps login attempts per client IP per minute.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=asha_payouts"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

// AdminConfig seeds the reconciling admin account at startup. Approvals are
// gated on the admin role, so a deployment without one cannot pay anybody
// out. Leave Email empty to skip seeding.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD"`
}

// ClientConfig configures the account client (accountctl). The server ignores it.
type ClientConfig struct {
	ServerURL    string        `env:"SERVER_URL,    default=http://localhost:8080"`
	Timeout      time.Duration `env:"HTTP_TIMEOUT,  default=10s"`
	PollInterval time.Duration `env:"POLL_INTERVAL, default=15s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
