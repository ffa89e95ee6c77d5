package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MySQL holds the relational entities (posts, friends, users)
	Database DatabaseConfig `json:"database"`

	// MongoDB holds the core-owned feed collections
	MongoDB MongoConfig `json:"mongodb"`

	// Redis backs the first-page feed cache
	Redis RedisConfig `json:"redis"`

	// Feed holds the fan-out pipeline knobs
	Feed FeedConfig `json:"feed"`

	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// RedisConfig contains the cache connection configuration
type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// FeedConfig contains the fan-out worker and materializer knobs.
type FeedConfig struct {
	DrainInterval    time.Duration `json:"drain_interval"`     // how often pending jobs are claimed
	DrainBatchSize   int           `json:"drain_batch_size"`   // max jobs claimed per cycle
	Workers          int           `json:"workers"`            // concurrent job processors per cycle
	JobTimeout       time.Duration `json:"job_timeout"`        // per-job processing deadline
	MaxAttempts      int           `json:"max_attempts"`       // attempts before a job is terminally failed
	CleanupInterval  time.Duration `json:"cleanup_interval"`   // expired-entry / old-job sweep cadence
	CleanupBatchSize int           `json:"cleanup_batch_size"` // max deletions per collection per sweep
	CandidateLimit   int           `json:"candidate_limit"`    // recent-post window for eligibility
	EntryTTL         time.Duration `json:"entry_ttl"`          // feed entry lifetime from generation
	CacheTTL         time.Duration `json:"cache_ttl"`          // redis first-page cache lifetime
	DefaultPageSize  int           `json:"default_page_size"`
	MaxPageSize      int           `json:"max_page_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// Load builds the configuration from the environment. A .env file is applied
// first when present, matching local development setups.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8084"),
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "socialfeed_user"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "socialfeed_db"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DB", "socialfeed"),
		},
		Redis: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		Feed: FeedConfig{
			DrainInterval:    getEnvDurationOrDefault("FEED_DRAIN_INTERVAL", time.Minute),
			DrainBatchSize:   getEnvIntOrDefault("FEED_DRAIN_BATCH", 50),
			Workers:          getEnvIntOrDefault("FEED_WORKERS", 10),
			JobTimeout:       getEnvDurationOrDefault("FEED_JOB_TIMEOUT", 30*time.Second),
			MaxAttempts:      getEnvIntOrDefault("FEED_MAX_ATTEMPTS", 3),
			CleanupInterval:  getEnvDurationOrDefault("FEED_CLEANUP_INTERVAL", 6*time.Hour),
			CleanupBatchSize: getEnvIntOrDefault("FEED_CLEANUP_BATCH", 1000),
			CandidateLimit:   getEnvIntOrDefault("FEED_CANDIDATE_LIMIT", 1000),
			EntryTTL:         getEnvDurationOrDefault("FEED_ENTRY_TTL", 7*24*time.Hour),
			CacheTTL:         getEnvDurationOrDefault("FEED_CACHE_TTL", 30*time.Second),
			DefaultPageSize:  getEnvIntOrDefault("FEED_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:      getEnvIntOrDefault("FEED_MAX_PAGE_SIZE", 100),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}
}

// DSN builds the MySQL connection string from the database section.
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	return cfg.MongoDB.URI
}

func (cfg *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
