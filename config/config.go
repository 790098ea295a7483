package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	// FRONTEND_URL is the public base used for share links.
	FRONTEND_URL string
	CORS_ORIGIN  string

	// Object storage settings for uploaded audio files.
	UPLOAD_DIR         string
	PUBLIC_STORAGE_URL string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	FRONTEND_URL = mustEnv("FRONTEND_URL")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	UPLOAD_DIR = getEnv("UPLOAD_DIR", "./uploads")
	PUBLIC_STORAGE_URL = getEnv("PUBLIC_STORAGE_URL", "http://localhost:8080/files")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
