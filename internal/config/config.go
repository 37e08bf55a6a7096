// Package config loads and exposes the gateway configuration.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the full gateway configuration.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	Upstream        `yaml:"upstream"`
	Session         `yaml:"session"`
	Payments        `yaml:"payments"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer holds the listener settings.
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the settings for the query cache and durable
// session store.
type RedisConnection struct {
	Address     string        `yaml:"address" env-default:"localhost:6379"`
	Password    string        `yaml:"password"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
}

// Upstream points at the external gym REST backend.
type Upstream struct {
	BaseURL        string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-required:"true"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"10s"`
	CacheTTL       time.Duration `yaml:"cache_ttl" env-default:"1m"`
}

// Session configures the gateway session tokens and the durable session
// cache.
type Session struct {
	JWTSecretKey       string        `yaml:"jwt_secret_key" env:"SESSION_JWT_SECRET" env-required:"true"`
	TokenTTL           time.Duration `yaml:"token_ttl" env-default:"24h"`
	RevalidateInterval time.Duration `yaml:"revalidate_interval" env-default:"5m"`
}

// Payments carries the processor publishable key handed to the console.
type Payments struct {
	PublishableKey string `yaml:"publishable_key" env:"PAYMENTS_PUBLISHABLE_KEY"`
}

// RateLimit configures the global request limiter.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"25"`
	Burst int     `yaml:"burst" env-default:"50"`
}

// MustLoad reads the config file named by CONFIG_PATH and exits on any
// problem. A .env file, when present, is loaded first so local runs can
// override secrets without touching the YAML.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
