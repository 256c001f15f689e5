package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Gen      GenConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenRouter string
	Stability  string
}

// GenConfig configures the two generation providers. Models and base URLs
// have working defaults; only the credentials are mandatory.
type GenConfig struct {
	OpenRouterBaseURL string
	TextModel         string
	StabilityBaseURL  string
	ImageModel        string
	RequestTimeout    time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
			Stability:  getEnv("STABILITY_API_KEY", ""),
		},
		Gen: GenConfig{
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			TextModel:         getEnv("TEXT_MODEL", "google/gemma-3n-e2b-it:free"),
			StabilityBaseURL:  getEnv("STABILITY_BASE_URL", "https://api.stability.ai"),
			ImageModel:        getEnv("IMAGE_MODEL", "stable-diffusion-xl-1024-v1-0"),
			RequestTimeout:    time.Duration(getEnvAsInt("GEN_REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
