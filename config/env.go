package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	APIBaseURL    string
	APIToken      string
	SubmitTimeout time.Duration
	CartStore     string
	CartDBPath    string
	RedisAddr     string
	RedisPassword string
	OriginURL     string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	submitTimeout, err := time.ParseDuration(getEnv("SUBMIT_TIMEOUT", "15s"))
	if err != nil || submitTimeout <= 0 {
		submitTimeout = 15 * time.Second
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		APIToken:      getEnv("API_TOKEN", ""),
		SubmitTimeout: submitTimeout,
		CartStore:     getEnv("CART_STORE", "sqlite"),
		CartDBPath:    getEnv("CART_DB_PATH", "./data/cart.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		OriginURL:     getEnv("ORIGIN_URL", ""),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Remote API: %s", AppConfig.APIBaseURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
