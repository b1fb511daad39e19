package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SegredoPadrao só serve para desenvolvimento local.
const SegredoPadrao = "condoos-dev-secret"

type Config struct {
	HTTPAddr      string
	StorageDriver string // "json" ou "postgres"
	DataDir       string
	UploadDir     string
	MaxUploadMB   int

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	SeedUsers   bool
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	DBHost            string
	DBPort            int
	DBName            string
	DBUsername        string
	DBPassword        string
	DBSecretID        string
	DBSSLModeDisabled bool

	RedisURL           string
	NotificationStream string
	WebhookURL         string
}

func Load() *Config {
	// .env é opcional
	godotenv.Load()

	return &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8000"),
		StorageDriver: getEnv("STORAGE_DRIVER", "json"),
		DataDir:       getEnv("DATA_DIR", "data"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:   getEnvAsInt("MAX_UPLOAD_MB", 32),

		JWTSecret: getEnv("JWT_SECRET", SegredoPadrao),
		JWTIssuer: getEnv("JWT_ISSUER", "condoos"),
		JWTTTL:    time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,

		SeedUsers:   getEnvAsBool("SEED_USERS", true),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnvAsInt("DB_PORT", 5432),
		DBName:            getEnv("DB_NAME", "condominio"),
		DBUsername:        os.Getenv("DB_USERNAME"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBSecretID:        os.Getenv("DB_SECRET_ID"),
		DBSSLModeDisabled: getEnvAsBool("DB_SSL_MODE_DISABLE", false),

		RedisURL:           os.Getenv("REDIS_URL"),
		NotificationStream: getEnv("NOTIFICATION_STREAM", "condoos:notificacoes"),
		WebhookURL:         os.Getenv("NOTIFICATION_WEBHOOK_URL"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
