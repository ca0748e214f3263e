package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,           default=8080"`
	Env       string        `env:"ENV,            default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,      default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,      default=info"`
	// Timezone names the calendar zone for "today" and agenda windows
	// (IANA name, e.g. America/Mexico_City). Empty means the system zone.
	Timezone string `env:"TIMEZONE"`
	// StorageDriver selects the persistence backend: redis or mongo.
	StorageDriver string `env:"STORAGE_DRIVER, default=redis"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskdeck"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from the environment using go-envconfig.
// A .env file in the working directory is merged in first when present.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
