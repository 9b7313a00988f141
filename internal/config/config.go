package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	RedisAddr   string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	HTTPServer  `yaml:"http_server"`
	Backend     `yaml:"backend"`
	Dashboard   `yaml:"dashboard"`
	Cleanup     `yaml:"cleanup"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// Backend is the upstream booking API the dashboard drives.
type Backend struct {
	BaseURL      string        `yaml:"base_url" env:"BACKEND_URL" env-required:"true"`
	Timeout      time.Duration `yaml:"timeout" env-default:"10s"`
	ServiceToken string        `yaml:"service_token" env:"BACKEND_SERVICE_TOKEN"`
}

type Dashboard struct {
	Timezone        string        `yaml:"timezone" env:"DASHBOARD_TZ" env-default:"America/New_York"`
	SessionTTL      time.Duration `yaml:"session_ttl" env-default:"12h"`
	SubmitTimeout   time.Duration `yaml:"submit_timeout" env-default:"30s"`
	ReorderDebounce time.Duration `yaml:"reorder_debounce" env-default:"300ms"`
	ScrollerSpan    int           `yaml:"scroller_span" env-default:"7"`
}

type Cleanup struct {
	Enabled  bool   `yaml:"enabled" env:"CLEANUP_ENABLED" env-default:"true"`
	Schedule string `yaml:"schedule" env:"CLEANUP_SCHEDULE" env-default:"0 3 * * *"`
}

func MustLoad() *Config {
	var cfg Config

	// .env is optional; real environment wins over it
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return &cfg
}

func (d Dashboard) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
