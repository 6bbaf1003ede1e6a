package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	AppPort            string
	AllowedOrigins     string
	NatsURL            string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBMaxIdleConns     int
	DBMaxOpenConns     int
	TokenSecret        string
	TokenExpirationHrs int
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	return Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		AppPort:            getEnv("APP_PORT", "8080"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "dueday"),
		DBPassword:         getEnv("DB_PASSWORD", "dueday"),
		DBName:             getEnv("DB_NAME", "dueday"),
		DBMaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		TokenSecret:        getEnv("TOKEN_SECRET", "change-this-secret-in-production"),
		TokenExpirationHrs: getEnvAsInt("TOKEN_EXPIRATION_HOURS", 72),
	}
}
