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

	Session SessionConfig
	Store   StoreConfig
	Redis   RedisConfig
}

// SessionConfig selects the signing setup. The algorithm family and
// strength are fixed for the process lifetime; an unknown selection
// aborts startup.
type SessionConfig struct {
	Algorithm string        `env:"JWT_ALGORITHM, default=HMAC"`
	Strength  int           `env:"JWT_STRENGTH,  default=256"`
	Secret    string        `env:"JWT_SECRET"`
	TTL       time.Duration `env:"SESSION_TTL,   default=2h"`
}

type StoreConfig struct {
	Backend       string `env:"STORE_BACKEND, default=memory"`
	MongoURI      string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB,      default=apdc_auth"`
}

// RedisConfig drives the login attempt limiter. An empty Addr leaves
// throttling disabled.
type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR"`
	DB            int           `env:"REDIS_DB,             default=0"`
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	AttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
