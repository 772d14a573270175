package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	SiteURL        string
	OutputDir      string
	SelectorFile   string
	FaultTolerance int
	RenderTimeout  int // seconds, per renderer call
	Headless       bool
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		// no .env file, system environment is enough
	}

	return Config{
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", ""),
		DBName:     getEnv("DB_NAME", ""),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "newshound-photos"),

		SiteURL:        getEnv("SITE_URL", "https://apnews.com/"),
		OutputDir:      getEnv("OUTPUT_DIR", "output"),
		SelectorFile:   getEnv("SELECTOR_FILE", ""),
		FaultTolerance: getInt("FAULT_TOLERANCE", 10),
		RenderTimeout:  getInt("RENDER_TIMEOUT_SECONDS", 10),
		Headless:       getBool("HEADLESS", true),
	}
}

// DatabaseEnabled reports whether enough DB settings are present to use
// the Postgres sink in addition to the CSV file.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

// MinIOEnabled reports whether photos go to object storage instead of
// the local content-addressed directory.
func (c Config) MinIOEnabled() bool {
	return c.MinIOEndpoint != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
