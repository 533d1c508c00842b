package config

import (
	"os"
	"strconv"

	"wordrush/internal/validation"
)

// Config holds application configuration
type Config struct {
	ServerPort          string
	DatabaseType        string
	DatabasePath        string
	DatabaseURL         string
	MigrationsPath      string
	GameDurationSeconds int
	TargetWords         int
	DiacriticLetters    string
	ClientOrigin        string
	LogLevel            string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:          getEnv("PORT", "8080"),
		DatabaseType:        getEnv("DB_TYPE", "sqlite"),
		DatabasePath:        getEnv("DB_PATH", "./wordrush.db"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", "./migrations"),
		GameDurationSeconds: getEnvInt("GAME_DURATION_SECONDS", 60),
		TargetWords:         getEnvInt("TARGET_WORDS", 21),
		DiacriticLetters:    getEnv("DIACRITIC_LETTERS", validation.DefaultDiacriticLetters),
		ClientOrigin:        getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
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
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
