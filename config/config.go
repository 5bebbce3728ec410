package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config returns the value of the given env key, loading .env on first use.
func Config(key string) string {
	// .env is optional in deployed environments
	godotenv.Load(".env")
	return os.Getenv(key)
}
