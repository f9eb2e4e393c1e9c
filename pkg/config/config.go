package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset
const DefaultJWTSecret = "change-me-in-production"

// ServiceConfig holds process-wide settings
type ServiceConfig struct {
	Name        string
	Environment string
	LogLevel    string
	InstanceID  string
}

// IsDevelopment reports whether the service runs in development mode
func (c ServiceConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the service runs in production mode
func (c ServiceConfig) IsProduction() bool {
	return c.Environment == "production"
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI                string
	Database           string
	ProductsCollection string
	UsersCollection    string
	OrdersCollection   string
	CountersCollection string
	Timeout            time.Duration
}

// PostgresConfig holds relational store configuration
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	GroupID string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled        bool
	JaegerEndpoint string
}

// SeedConfig controls sample catalog generation
type SeedConfig struct {
	Enabled bool
	Rows    int
	Seed    int64
}

// LoginLimitConfig controls the login attempt limiter
type LoginLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// Config holds all configuration
type Config struct {
	Service    ServiceConfig
	HTTPPort   string
	GRPCPort   string
	Driver     string
	Mongo      MongoConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	Tracing    TracingConfig
	Seed       SeedConfig
	LoginLimit LoginLimitConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	hostname, _ := os.Hostname()

	return &Config{
		Service: ServiceConfig{
			Name:        getEnv("OTEL_SERVICE_NAME", "retail-dashboard"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			InstanceID:  getEnv("INSTANCE_ID", hostname),
		},
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		GRPCPort: getEnv("GRPC_PORT", "9090"),
		Driver:   getEnv("STORE_DRIVER", DriverMongo),
		Mongo: MongoConfig{
			URI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:           getEnv("MONGO_DATABASE", "retail"),
			ProductsCollection: getEnv("MONGO_PRODUCTS_COLLECTION", "products"),
			UsersCollection:    getEnv("MONGO_USERS_COLLECTION", "users"),
			OrdersCollection:   getEnv("MONGO_ORDERS_COLLECTION", "orders"),
			CountersCollection: getEnv("MONGO_COUNTERS_COLLECTION", "counters"),
			Timeout:            getEnvAsDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "retail"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvAsBool("KAFKA_ENABLED", false),
			Brokers: getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			GroupID: getEnv("KAFKA_GROUP_ID", "retail-dashboard"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TTL:    getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Tracing: TracingConfig{
			Enabled:        getEnvAsBool("TRACING_ENABLED", false),
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Seed: SeedConfig{
			Enabled: getEnvAsBool("SEED_ENABLED", true),
			Rows:    getEnvAsInt("SEED_ROWS", 30),
			Seed:    int64(getEnvAsInt("SEED_RANDOM", 42)),
		},
		LoginLimit: LoginLimitConfig{
			MaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
			Window:      getEnvAsDuration("LOGIN_WINDOW", time.Minute),
		},
	}
}

// Validate rejects settings the service must not start with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Service.IsProduction() && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in %s", c.Service.Environment)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
