package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	JWTSecret          string
	DBPath             string
	UploadDir          string
	TokenExpiryMinutes int
}

var (
	AppConfig Config
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:               getEnvOrDefault("PORT", "3000"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		DBPath:             getEnvOrDefault("DB_PATH", "hr_system.db"),
		UploadDir:          getEnvOrDefault("UPLOAD_DIR", "uploads"),
		TokenExpiryMinutes: getEnvIntOrDefault("TOKEN_EXPIRY_MINUTES", 60),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer, got %q", key, value)
	}
	return n
}
