package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Backend string        `yaml:"backend"` // none, memory, redis
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

type RateLimitConfig struct {
	Capacity    int           `yaml:"capacity"`
	Window      time.Duration `yaml:"window"`
	CleanupCron string        `yaml:"cleanup_cron"`
}

type Config struct {
	Port        string          `yaml:"port"`
	LogLevel    string          `yaml:"log_level"`
	LogFormat   string          `yaml:"log_format"`
	CSVFileName string          `yaml:"csv_file_name"`
	Cache       CacheConfig     `yaml:"cache"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`

	envErrors []string
}

func Default() *Config {
	return &Config{
		Port:        "8080",
		LogLevel:    "info",
		LogFormat:   "text",
		CSVFileName: "education_loan_schedule.csv",
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     10 * time.Minute,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		RateLimit: RateLimitConfig{
			Capacity:    30,
			Window:      time.Minute,
			CleanupCron: "@every 30m",
		},
	}
}

// Load reads an optional .env file, then an optional YAML file at path, then
// applies environment variable overrides on top of the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.CSVFileName = getEnv("CSV_FILE_NAME", c.CSVFileName)

	c.Cache.Backend = getEnv("CACHE_BACKEND", c.Cache.Backend)
	c.Cache.TTL = c.getEnvDuration("CACHE_TTL", c.Cache.TTL)
	c.Cache.Redis.Addr = getEnv("REDIS_ADDR", c.Cache.Redis.Addr)
	c.Cache.Redis.Password = getEnv("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = c.getEnvInt("REDIS_DB", c.Cache.Redis.DB)

	c.RateLimit.Capacity = c.getEnvInt("RATE_LIMIT_CAPACITY", c.RateLimit.Capacity)
	c.RateLimit.Window = c.getEnvDuration("RATE_LIMIT_WINDOW", c.RateLimit.Window)
	c.RateLimit.CleanupCron = getEnv("RATE_LIMIT_CLEANUP_CRON", c.RateLimit.CleanupCron)
}

// Validate returns one error listing every invalid setting.
func (c *Config) Validate() error {
	problems := append([]string(nil), c.envErrors...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	switch c.Cache.Backend {
	case "none", "memory":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			problems = append(problems, "redis address cannot be empty when using redis cache backend")
		}
		if c.Cache.Redis.DB < 0 {
			problems = append(problems, fmt.Sprintf("invalid redis db %d: must be non-negative", c.Cache.Redis.DB))
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s': must be one of [none memory redis]", c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		problems = append(problems, fmt.Sprintf("invalid cache ttl %v: must not be negative", c.Cache.TTL))
	}

	if c.RateLimit.Capacity < 1 {
		problems = append(problems, fmt.Sprintf("invalid rate limit capacity %d: must be at least 1", c.RateLimit.Capacity))
	}
	if c.RateLimit.Window < time.Second {
		problems = append(problems, fmt.Sprintf("invalid rate limit window %v: must be at least 1 second", c.RateLimit.Window))
	}
	if c.RateLimit.CleanupCron == "" {
		problems = append(problems, "rate limit cleanup schedule cannot be empty")
	}

	if c.CSVFileName == "" {
		problems = append(problems, "csv file name cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt keeps the current value on a malformed override and records the
// problem for Validate.
func (c *Config) getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		c.envErrors = append(c.envErrors, fmt.Sprintf("invalid %s '%s': must be a number", key, value))
		return defaultValue
	}
	return i
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.envErrors = append(c.envErrors, fmt.Sprintf("invalid %s '%s': must be a duration such as 30s or 10m", key, value))
		return defaultValue
	}
	return d
}
