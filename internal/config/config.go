package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings loaded from the environment.
type Config struct {
	Port         string
	DatabaseURL  string
	AllowOrigins []string
}

// Load reads configs/.env when present, then assembles the config from
// environment variables with development defaults.
func Load() Config {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "postgres")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: dsn,
		AllowOrigins: []string{
			getenv("FRONTEND_URL", "http://localhost:5173"),
			"http://127.0.0.1:5173",
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
