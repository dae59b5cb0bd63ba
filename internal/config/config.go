package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the full runtime configuration of the ledger service.
type Config struct {
	Port        string          `yaml:"port"`
	Env         string          `yaml:"env"`
	LogLevel    string          `yaml:"log_level"`
	LogFormat   string          `yaml:"log_format"`
	Storage     string          `yaml:"storage"`
	CORSOrigins string          `yaml:"cors_origins"`
	SignupRate  int             `yaml:"signup_rate"`
	DB          DBConfig        `yaml:"db"`
	Redis       RedisConfig     `yaml:"redis"`
	Admin       AdminConfig     `yaml:"admin"`
	Converter   ConverterConfig `yaml:"converter"`
}

// DBConfig holds the postgres connection and pool settings.
type DBConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// DSN renders the libpq-style connection string understood by both drivers.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig configures the optional wallet cache.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// AdminConfig carries the statistics credential. KeyHash, when set, is a bcrypt
// hash and takes precedence over Key.
type AdminConfig struct {
	Key     string `yaml:"key"`
	KeyHash string `yaml:"key_hash"`
}

// ConverterConfig selects the BTC to fiat price source.
type ConverterConfig struct {
	Kind      string        `yaml:"kind"`
	TickerURL string        `yaml:"ticker_url"`
	TickerTTL time.Duration `yaml:"ticker_ttl"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:        "3000",
		Env:         "development",
		LogLevel:    "info",
		LogFormat:   "text",
		Storage:     StorageMemory,
		CORSOrigins: "*",
		SignupRate:  20,
		DB: DBConfig{
			Driver:          "pgx",
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			Name:            "btcwallet",
			SSLMode:         "disable",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
			TTL:  5 * time.Minute,
		},
		Converter: ConverterConfig{
			Kind:      "ticker",
			TickerURL: "https://blockchain.info/ticker",
			TickerTTL: time.Minute,
			Timeout:   5 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := GetEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = GetEnv("PORT", c.Port)
	c.Env = GetEnv("ENV", c.Env)
	c.LogLevel = GetEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = GetEnv("LOG_FORMAT", c.LogFormat)
	c.Storage = strings.ToLower(GetEnv("STORAGE", c.Storage))
	c.CORSOrigins = GetEnv("CORS_ORIGINS", c.CORSOrigins)
	c.SignupRate = GetIntEnv("USER_SIGNUP_RATE", c.SignupRate)

	c.DB.Driver = GetEnv("DB_DRIVER", c.DB.Driver)
	c.DB.Host = GetEnv("DB_HOST", c.DB.Host)
	c.DB.Port = GetEnv("DB_PORT", c.DB.Port)
	c.DB.User = GetEnv("DB_USER", c.DB.User)
	c.DB.Password = GetEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = GetEnv("DB_NAME", c.DB.Name)
	c.DB.SSLMode = GetEnv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.MaxIdleConns = GetIntEnv("DB_MAX_IDLE_CONNS", c.DB.MaxIdleConns)
	c.DB.MaxOpenConns = GetIntEnv("DB_MAX_OPEN_CONNS", c.DB.MaxOpenConns)
	c.DB.ConnMaxLifetime = GetDurationEnv("DB_CONN_MAX_LIFETIME", c.DB.ConnMaxLifetime)
	c.DB.ConnMaxIdleTime = GetDurationEnv("DB_CONN_MAX_IDLE_TIME", c.DB.ConnMaxIdleTime)

	c.Redis.Enabled = GetBoolEnv("REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.Host = GetEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = GetEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = GetEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = GetIntEnv("REDIS_DB", c.Redis.DB)
	c.Redis.TTL = GetDurationEnv("CACHE_TTL", c.Redis.TTL)

	c.Admin.Key = GetEnv("ADMIN_KEY", c.Admin.Key)
	c.Admin.KeyHash = GetEnv("ADMIN_KEY_HASH", c.Admin.KeyHash)

	c.Converter.Kind = strings.ToLower(GetEnv("CONVERTER", c.Converter.Kind))
	c.Converter.TickerURL = GetEnv("TICKER_URL", c.Converter.TickerURL)
	c.Converter.TickerTTL = GetDurationEnv("TICKER_TTL", c.Converter.TickerTTL)
	c.Converter.Timeout = GetDurationEnv("TICKER_TIMEOUT", c.Converter.Timeout)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	switch c.DB.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", c.DB.Driver)
	}
	if c.Admin.Key == "" && c.Admin.KeyHash == "" {
		return fmt.Errorf("ADMIN_KEY or ADMIN_KEY_HASH must be set")
	}
	return nil
}
