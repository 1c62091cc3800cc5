package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort        string
	DatabaseType      string
	DatabasePath      string
	DatabaseURL       string
	MigrationsPath    string
	AudioCachePath    string
	ImageBaseURL      string
	Language          string
	BatchSize         int
	ParentTokenSecret string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:        getEnv("PORT", "8080"),
		DatabaseType:      getEnv("DB_TYPE", "sqlite"),
		DatabasePath:      getEnv("DB_PATH", "./otiyot.db"),
		DatabaseURL:       getEnv("DB_URL", ""),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		AudioCachePath:    getEnv("AUDIO_CACHE_PATH", "./audio-cache"),
		ImageBaseURL:      getEnv("IMAGE_BASE_URL", "/assets/images"),
		Language:          getEnv("CONTENT_LANGUAGE", "he"),
		BatchSize:         getEnvInt("BATCH_SIZE", 5),
		ParentTokenSecret: getEnv("PARENT_TOKEN_SECRET", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
