// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	ResultTTL time.Duration `yaml:"result_ttl"`
}

type RabbitMQConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type AIConfig struct {
	GeminiKey       string        `yaml:"gemini_key"`
	GeminiURL       string        `yaml:"gemini_url"`
	Model           string        `yaml:"model"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	PollInterval    time.Duration `yaml:"poll_interval"` // media ingestion poll cadence
	PollTimeout     time.Duration `yaml:"poll_timeout"`  // media ingestion wait budget
}

type WorkerConfig struct {
	Count           int           `yaml:"count"`
	LockTTL         time.Duration `yaml:"lock_ttl"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
}

type APIConfig struct {
	Port     int    `yaml:"port"`
	AdminKey string `yaml:"admin_key"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	AI       AIConfig       `yaml:"ai"`
	Worker   WorkerConfig   `yaml:"worker"`
	API      APIConfig      `yaml:"api"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads config.yaml, then lets well-known environment variables
// override it so containerized deploys can stay file-free. A local .env is
// honored when present.
func LoadConfig() (*Config, error) {
	var configPath string
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	_ = godotenv.Load()

	var cfg Config
	b, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	envOverride(&cfg.Database.URL, "DATABASE_URL")
	envOverride(&cfg.Redis.Addr, "REDIS_URL")
	envOverride(&cfg.RabbitMQ.URL, "RABBITMQ_URL")
	envOverride(&cfg.AI.GeminiKey, "GEMINI_API_KEY")
	envOverride(&cfg.API.AdminKey, "ADMIN_API_KEY")

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.RabbitMQ.Queue == "" {
		cfg.RabbitMQ.Queue = "video_assessments"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-1.5-flash"
	}
	cfg.AI.PollInterval = orDuration(cfg.AI.PollInterval, 5*time.Second)
	cfg.AI.PollTimeout = orDuration(cfg.AI.PollTimeout, 10*time.Minute)
	if cfg.Worker.Count <= 0 {
		cfg.Worker.Count = 4
	}
	cfg.Worker.LockTTL = orDuration(cfg.Worker.LockTTL, 30*time.Minute)
	cfg.Worker.DownloadTimeout = orDuration(cfg.Worker.DownloadTimeout, 5*time.Minute)
	cfg.Redis.ResultTTL = orDuration(cfg.Redis.ResultTTL, 24*time.Hour)
	if cfg.API.Port <= 0 {
		cfg.API.Port = 8080
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.Addr == "" {
		return nil, errors.New("redis.addr is required")
	}
	if cfg.RabbitMQ.URL == "" {
		return nil, errors.New("rabbitmq.url is required")
	}
	if cfg.AI.GeminiKey == "" {
		return nil, errors.New("ai.gemini_key is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func orDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
