package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	SecretKey string
	// Token lifetimes in minutes.
	AccessTokenExpireMinutes  int
	RefreshTokenExpireMinutes int
	ResetTokenExpireMinutes   int

	EdinetAPIKey string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSender   string
	FrontEndURL  string

	// Cron expression for the EDINET crawl task.
	CrawlSchedule string
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		SecretKey: getEnv("SECRET_KEY", ""),
		// 60 minutes * 24 hours * 8 days
		AccessTokenExpireMinutes:  getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*8),
		RefreshTokenExpireMinutes: getEnvInt("REFRESH_TOKEN_EXPIRE_MINUTES", 60*24*14),
		ResetTokenExpireMinutes:   getEnvInt("RESET_TOKEN_EXPIRE_MINUTES", 60*24*1),

		EdinetAPIKey: getEnv("EDINET_API_KEY", ""),

		S3Endpoint:  getEnv("S3_ENDPOINT", "s3.ap-northeast-1.amazonaws.com"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3UseSSL:    getEnvBool("S3_USE_SSL", true),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPSender:   getEnv("SMTP_SENDER", "noreply@yourdomain.com"),
		FrontEndURL:  getEnv("FRONT_END_URL", "http://localhost:3000"),

		// Runs on the 3rd day of every month by default.
		CrawlSchedule: getEnv("CRAWL_SCHEDULE", "0 0 3 * *"),
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
