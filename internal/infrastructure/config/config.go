package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is read once at startup and passed down explicitly. Changing the
// signing secret, algorithm, or TTL requires a restart.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Seed  SeedConfig
	Mongo MongoConfig
	Redis RedisConfig

	// DefaultRole is granted automatically on self-registration when a
	// role definition of that name exists.
	DefaultRole string `env:"DEFAULT_ROLE, default=user"`
	// AuditWorkers sizes the audit fan-out worker pool.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type JWTConfig struct {
	Secret     string `env:"JWT_SECRET"`
	Algorithm  string `env:"JWT_ALGORITHM,     default=HS256"`
	TTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=30"`
}

// SeedConfig controls the administrator account installed at bootstrap.
type SeedConfig struct {
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=Admin12345"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rbac_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
