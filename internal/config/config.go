package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	AllowOrigins       string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	ExpenseSchemaPath  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:               getenv("PORT", "8080"),
		AllowOrigins:       getenv("ALLOW_ORIGINS", "*"),
		AccessTokenSecret:  getenv("ACCESS_TOKEN_SECRET", "default-access-secret"),
		RefreshTokenSecret: getenv("REFRESH_TOKEN_SECRET", "default-refresh-secret"),
		AccessTokenTTL:     time.Duration(atoi("ACCESS_TOKEN_EXPIRY_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(atoi("REFRESH_TOKEN_EXPIRY_DAYS", 7)) * 24 * time.Hour,
		ExpenseSchemaPath:  getenv("EXPENSE_SCHEMA_PATH", "./schemas/expense.schema.json"),
	}
}
