package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Server holds the HTTP API configuration, read from the environment.
type Server struct {
	Environment string
	Port        string
	FrontendURL string
	TimeoutSecs int
}

// LoadServer reads server settings from the environment, loading a .env
// file first when one exists.
func LoadServer() *Server {
	godotenv.Load()

	return &Server{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", "8000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		TimeoutSecs: getEnvInt("REQUEST_TIMEOUT_SECONDS", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
