package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Queue      QueueConfig
	API        APIConfig
	Generation GenerationConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// QueueConfig holds queue configuration (Redis)
type QueueConfig struct {
	RedisURL  string
	QueueName string
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int
}

// GenerationConfig holds the default generation parameters. Each run may
// override the counts, ratios and batch sizes through the API.
type GenerationConfig struct {
	Seed                 int64
	NumCustomers         int
	NumOrders            int
	CustomerBatchSize    int
	OrderBatchSize       int
	TransactionBatchSize int
	DuplicationRate      float64
	ContactMatchRate     float64
	NameTypoRate         float64
	TypoProbability      float64
	CountryFillRate      float64
	DOBFillRate          float64
	EmailFillRate        float64
	PhoneFillRate        float64
	OrderStartDate       time.Time
	OrderEndDate         time.Time
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	apiPort, err := getEnvInt("API_PORT", 8080)
	if err != nil {
		return nil, err
	}

	gen, err := loadGeneration()
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "retailgen"),
			Password: getEnv("DB_PASSWORD", "retailgen"),
			DBName:   getEnv("DB_NAME", "retailgen"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Queue: QueueConfig{
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			QueueName: getEnv("QUEUE_NAME", "generation_runs"),
		},
		API: APIConfig{
			Port: apiPort,
		},
		Generation: gen,
	}, nil
}

func loadGeneration() (GenerationConfig, error) {
	gen := GenerationConfig{}

	ints := []struct {
		dest       *int
		key        string
		defaultVal int
	}{
		{&gen.NumCustomers, "NUM_CUSTOMERS", 1_000_000},
		{&gen.NumOrders, "NUM_ORDERS", 2_000_000},
		{&gen.CustomerBatchSize, "CUSTOMER_BATCH_SIZE", 50_000},
		{&gen.OrderBatchSize, "ORDER_BATCH_SIZE", 100_000},
		{&gen.TransactionBatchSize, "TRANSACTION_BATCH_SIZE", 100_000},
	}
	for _, v := range ints {
		val, err := getEnvInt(v.key, v.defaultVal)
		if err != nil {
			return gen, err
		}
		*v.dest = val
	}

	floats := []struct {
		dest       *float64
		key        string
		defaultVal float64
	}{
		{&gen.DuplicationRate, "DUPLICATION_RATE", 0.2},
		{&gen.ContactMatchRate, "CONTACT_MATCH_RATE", 0.8},
		{&gen.NameTypoRate, "NAME_TYPO_RATE", 0.5},
		{&gen.TypoProbability, "TYPO_PROBABILITY", 0.2},
		{&gen.CountryFillRate, "COUNTRY_FILL_RATE", 0.95},
		{&gen.DOBFillRate, "DOB_FILL_RATE", 0.50},
		{&gen.EmailFillRate, "EMAIL_FILL_RATE", 0.80},
		{&gen.PhoneFillRate, "PHONE_FILL_RATE", 0.75},
	}
	for _, v := range floats {
		val, err := getEnvFloat(v.key, v.defaultVal)
		if err != nil {
			return gen, err
		}
		*v.dest = val
	}

	seed, err := getEnvInt("GEN_SEED", 0)
	if err != nil {
		return gen, err
	}
	gen.Seed = int64(seed)

	start, err := getEnvDate("ORDER_START_DATE", "2023-01-01")
	if err != nil {
		return gen, err
	}
	end, err := getEnvDate("ORDER_END_DATE", "2025-02-25")
	if err != nil {
		return gen, err
	}
	if end.Before(start) {
		return gen, fmt.Errorf("ORDER_END_DATE %s precedes ORDER_START_DATE %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	gen.OrderStartDate = start
	gen.OrderEndDate = end

	return gen, nil
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDate(key, defaultValue string) (time.Time, error) {
	value := getEnv(key, defaultValue)
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
