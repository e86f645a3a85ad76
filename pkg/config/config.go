package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabasePath string

	// pagination policy
	DefaultPerPage int
	MaxPerPage     int
}

func Load() *Config {
	godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	return &Config{
		Port:         port,
		DatabasePath: getEnv("DATABASE_PATH", "technova.db"),

		DefaultPerPage: getEnvInt("DEFAULT_PER_PAGE", 10),
		MaxPerPage:     getEnvInt("MAX_PER_PAGE", 100),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
