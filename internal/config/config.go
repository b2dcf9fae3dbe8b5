package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	ServerPort  string
	JWTSecret   string
	JWTAudience string
	JWTExpiry   time.Duration
	StoreDriver string
	AutoMigrate bool
	LogLevel    string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "familysync"),
		DBPassword:  getEnv("DB_PASSWORD", "familysync"),
		DBName:      getEnv("DB_NAME", "familysync"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretkey"),
		JWTAudience: getEnv("JWT_AUDIENCE", "powersync-dev"),
		JWTExpiry:   time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		StoreDriver: getEnv("STORE_DRIVER", StorePostgres),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// DSN is the Postgres connection string for the gorm store.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	n, err := cast.ToIntE(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		log.Printf("⚠️  Ignoring %s=%q: %v", key, value, err)
		return defaultVal
	}
	return b
}
