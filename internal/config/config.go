package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Leave    LeaveConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// LeaveConfig holds the leave-engine computation settings.
type LeaveConfig struct {
	// PolicyExpiryCheck makes the resolver honor effective_to when matching
	// stored policies. Off by default until HR backfills end dates.
	PolicyExpiryCheck bool

	BasicSalaryRatio    decimal.Decimal
	WorkingDaysPerMonth decimal.Decimal
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; variables come
	// from the process environment there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dvbc-erp"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Leave engine configuration
	basicRatio, err := decimal.NewFromString(getEnv("BASIC_SALARY_RATIO", "0.4"))
	if err != nil {
		return nil, fmt.Errorf("invalid BASIC_SALARY_RATIO: %w", err)
	}
	workingDays, err := decimal.NewFromString(getEnv("WORKING_DAYS_PER_MONTH", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKING_DAYS_PER_MONTH: %w", err)
	}

	config.Leave = LeaveConfig{
		PolicyExpiryCheck:   getEnv("LEAVE_POLICY_EXPIRY_CHECK", "false") == "true",
		BasicSalaryRatio:    basicRatio,
		WorkingDaysPerMonth: workingDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !c.Leave.WorkingDaysPerMonth.IsPositive() {
		return fmt.Errorf("WORKING_DAYS_PER_MONTH must be positive")
	}
	if !c.Leave.BasicSalaryRatio.IsPositive() {
		return fmt.Errorf("BASIC_SALARY_RATIO must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
