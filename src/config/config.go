package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and passed down; handlers never reach for os.Getenv.
type Config struct {
	Port string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string
	DatabaseTimezone string

	JWTSecret string

	PayPalClientID    string
	PayPalSecret      string
	PayPalEnvironment string // "sandbox" or "live"

	MapsAPIKey string

	RedisURL string

	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	AppHost   string
	UploadDir string
	TempDir   string
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:              getenv("PORT", "5000"),
		DatabaseHost:      getenv("DATABASE_HOST", "localhost"),
		DatabasePort:      getenv("DATABASE_PORT", "5432"),
		DatabaseUser:      getenv("DATABASE_USER", "postgres"),
		DatabasePassword:  os.Getenv("DATABASE_PASSWORD"),
		DatabaseName:      getenv("DATABASE_NAME", "evbook"),
		DatabaseSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
		DatabaseTimezone:  getenv("DATABASE_TIMEZONE", "UTC"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PayPalClientID:    os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:      os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalEnvironment: getenv("PAYPAL_ENVIRONMENT", "sandbox"),
		MapsAPIKey:        os.Getenv("GOOGLE_MAPS_API"),
		RedisURL:          os.Getenv("REDIS_HOST"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		MailFrom:          getenv("MAIL_FROM", "bookings@evbook.local"),
		AppHost:           getenv("APP_HOST", "http://localhost:3000"),
		UploadDir:         getenv("UPLOAD_DIR", "public/uploads"),
		TempDir:           getenv("TEMP_DIR", "tmp"),
	}
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DatabaseHost, c.DatabaseUser, c.DatabasePassword, c.DatabaseName, c.DatabasePort, c.DatabaseSSLMode, c.DatabaseTimezone)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

const (
	DATE_PARSE_FORMAT     = "2006-01-02"
	DATETIME_PARSE_FORMAT = "2006-01-02T15:04"
)
