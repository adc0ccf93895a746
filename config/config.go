package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config is everything the service reads from the environment. A restaurant
// install is a single fixed floor, so the table count defaults to 12 and
// rarely changes.
type Config struct {
	Port       string
	GinMode    string
	TableCount int
	DevTokens  bool

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string
}

func Load() Config {
	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    os.Getenv("GIN_MODE"),
		TableCount: 12,
		DevTokens:  os.Getenv("DEV_TOKENS") == "1",
		DBUser:     os.Getenv("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
	}

	if v := os.Getenv("TABLE_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TableCount = n
		}
	}

	return cfg
}

// OpenDB connects to MySQL when configured, otherwise falls back to a local
// SQLite file so a fresh checkout runs with zero setup.
func (c Config) OpenDB() (*gorm.DB, error) {
	if c.DBName == "" {
		return gorm.Open(sqlite.Open("restaurant-pos.db"), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
