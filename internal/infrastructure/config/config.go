package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the environment-driven configuration for the client CLI and the
// development stub server. Defaults suit local development against the stub.
type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API   APIConfig
	Token TokenConfig
	Redis RedisConfig
	Stub  StubConfig
}

type APIConfig struct {
	BaseURL        string        `env:"SAJILO_API_URL,         default=http://localhost:8080/api"`
	Timeout        time.Duration `env:"SAJILO_API_TIMEOUT,     default=15s"`
	ProfileTimeout time.Duration `env:"SAJILO_PROFILE_TIMEOUT, default=10s"`
}

type TokenConfig struct {
	// Backend selects where the bearer token persists: "file" or "redis".
	Backend string `env:"SAJILO_TOKEN_BACKEND, default=file"`
	// Path overrides the token file location; empty means the user config dir.
	Path string `env:"SAJILO_TOKEN_PATH"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// StubConfig configures the development stub backend.
type StubConfig struct {
	Port      string        `env:"STUB_PORT,       default=8080"`
	JWTSecret string        `env:"STUB_JWT_SECRET, default=sajilo-dev-secret"`
	TokenTTL  time.Duration `env:"STUB_TOKEN_TTL,  default=24h"`
	// InMemory keeps stub users in process memory; set false to use Mongo.
	InMemory bool `env:"STUB_IN_MEMORY, default=true"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sajilokaam"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
