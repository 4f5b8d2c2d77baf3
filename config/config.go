package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	UploadDir     string // directory holding uploaded audio files
	MaxUploadSize int64  // bytes
	CORSOrigin    string
	DefaultPlanID int64

	LogLevel string
	LogFile  string // empty logs to stdout only

	// MinIO mirror, disabled when MinioEndpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Existing variables win over .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "5000"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "music_streaming"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "streammusic"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_MB", 100)) << 20,
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		DefaultPlanID: int64(getEnvInt("DEFAULT_PLAN_ID", 1)),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),

		MinioEndpoint:  strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "streammusic"),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

// MinioEnabled reports whether an object-storage mirror is configured.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}
