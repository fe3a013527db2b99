package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all process-wide settings. Defaults are safe for local
// development only; JWT_SECRET and ROOT_PASSWORD must be overridden in any
// real deployment.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Root  RootConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig drives the token service and the password hasher. Rotating
// JWTSecret invalidates every outstanding token; there is no key versioning.
type AuthConfig struct {
	JWTSecret    string `env:"JWT_SECRET,        default=22446310"`
	JWTAlgorithm string `env:"JWT_ALGORITHM,     default=HS256"`
	TokenTTLMin  int    `env:"TOKEN_TTL_MINUTES, default=30"`
	BcryptCost   int    `env:"BCRYPT_COST,       default=10"`
}

// RootConfig describes the bootstrap root account. The default password is a
// known value operators are expected to rotate after first start.
type RootConfig struct {
	Username string `env:"ROOT_USERNAME, default=root"`
	Name     string `env:"ROOT_NAME,     default=Root User"`
	Email    string `env:"ROOT_EMAIL,    default=root@teconectapi.it.ao"`
	Password string `env:"ROOT_PASSWORD, default=22446310"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=teconect_accounts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// TokenTTL returns the default session token lifetime.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
