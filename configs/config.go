package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs. It is built once in main and
// injected into the stores and services; nothing reads the environment after
// startup.
type Config struct {
	Port          int
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	DBNameTest    string
	RedisHost     string
	RedisPort     int
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	CORSOrigins   string
	LogDir        string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		// Only log when not running under tests
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:          envInt("PORT", 3004),
		DBHost:        envString("DB_HOST", "localhost"),
		DBPort:        envInt("DB_PORT", 5432),
		DBUser:        envString("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        envString("DB_NAME", "taskhive"),
		DBNameTest:    envString("DB_NAME_TEST", "taskhive_test"),
		RedisHost:     envString("REDIS_HOST", "localhost"),
		RedisPort:     envInt("REDIS_PORT", 6379),
		JWTSecret:     envString("JWT_SECRET", "secret"),
		TokenTTL:      envDuration("TOKEN_TTL", 7*24*time.Hour),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:   envString("CORS_ORIGINS", "*"),
		LogDir:        envString("LOG_DIR", "logs"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
