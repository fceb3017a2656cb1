package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr                 string
	Environment          string
	LogLevel             string
	SalaryTablePath      string
	TaxTablePath         string
	DatabaseURL          string
	MigrationsDir        string
	RunMigrations        bool
	RunSeed              bool
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	SessionTTL           time.Duration
	FrontendDir          string
	MaxBodyBytes         int64
	RateLimitPerMinute   int
	MetricsEnabled       bool
	ProductivityBaseRate float64
}

// Load reads the configuration from environment variables, falling back to
// an optional .env or config file in the working directory.
func Load() Config {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	file := viper.New()
	file.SetConfigName("config")
	file.AddConfigPath("./config")
	if err := file.ReadInConfig(); err == nil {
		_ = v.MergeConfigMap(file.AllSettings())
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return Config{
		Addr:                 getEnv(v, "APP_ADDR", "127.0.0.1:8080"),
		Environment:          getEnv(v, "APP_ENV", "development"),
		LogLevel:             getEnv(v, "LOG_LEVEL", "info"),
		SalaryTablePath:      getEnv(v, "SALARY_TABLE_PATH", "data/vencimentos.json"),
		TaxTablePath:         getEnv(v, "TAX_TABLE_PATH", "data/tabela_ir.json"),
		DatabaseURL:          getEnv(v, "DATABASE_URL", ""),
		MigrationsDir:        getEnv(v, "MIGRATIONS_DIR", "migrations"),
		RunMigrations:        getEnvBool(v, "RUN_MIGRATIONS", true),
		RunSeed:              getEnvBool(v, "RUN_SEED", true),
		RedisAddr:            getEnv(v, "REDIS_ADDR", ""),
		RedisPassword:        getEnv(v, "REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt(v, "REDIS_DB", 0),
		SessionTTL:           getEnvDuration(v, "SESSION_TTL", 12*time.Hour),
		FrontendDir:          getEnv(v, "FRONTEND_DIR", "frontend/dist"),
		MaxBodyBytes:         int64(getEnvInt(v, "MAX_BODY_BYTES", 65536)),
		RateLimitPerMinute:   getEnvInt(v, "RATE_LIMIT_PER_MINUTE", 600),
		MetricsEnabled:       getEnvBool(v, "METRICS_ENABLED", true),
		ProductivityBaseRate: getEnvFloat(v, "PRODUCTIVITY_BASE_RATE", 0.90),
	}
}

func getEnv(v *viper.Viper, key, fallback string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(v *viper.Viper, key string, fallback bool) bool {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(v *viper.Viper, key string, fallback int) int {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(v *viper.Viper, key string, fallback float64) float64 {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		if strings.TrimSpace(c.SalaryTablePath) == "" {
			return fmt.Errorf("SALARY_TABLE_PATH is required when DATABASE_URL is not set")
		}
		if strings.TrimSpace(c.TaxTablePath) == "" {
			return fmt.Errorf("TAX_TABLE_PATH is required when DATABASE_URL is not set")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.ProductivityBaseRate <= 0 || c.ProductivityBaseRate > 1 {
		return fmt.Errorf("PRODUCTIVITY_BASE_RATE must be in (0, 1]")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
