package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	// SessionTTL bounds both the JWT expiry and the session cookie lifetime.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	// CartTTL is how long an untouched cart snapshot survives in Redis.
	CartTTL time.Duration `env:"CART_TTL,    default=720h"`

	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shopflow"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminConfig seeds the bootstrap admin account at startup. When Email or
// Password is empty no account is seeded; signup never grants admin, so this
// is the only way a deployment gets its first admin.
type AdminConfig struct {
	Email       string `env:"ADMIN_EMAIL"`
	Password    string `env:"ADMIN_PASSWORD"`
	DisplayName string `env:"ADMIN_DISPLAY_NAME, default=Administrator"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
