package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port            string
	DBConn          string
	MigrationsDir   string
	LogLevel        string
	JWTSecret       string
	GatewayURL      string
	GatewayMerchant string
	GatewaySecret   string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
	ReminderCron    string
	ReminderDays    int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5432 user=portal password=portal dbname=portal sslmode=disable"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "migrations"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		GatewayURL:      getEnv("GATEWAY_URL", "https://emd.uida.example.in/propertyMartPayment/payment"),
		GatewayMerchant: getEnv("GATEWAY_MERCHANT", "UIDA-PORTAL"),
		GatewaySecret:   getEnv("GATEWAY_SECRET", "changeme"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@uida.example.in"),
		ReminderCron:    getEnv("REMINDER_CRON", "0 9 * * *"),
	}

	days, err := strconv.Atoi(getEnv("REMINDER_DAYS", "7"))
	if err != nil || days < 0 {
		return nil, fmt.Errorf("REMINDER_DAYS must be a non-negative integer")
	}
	cfg.ReminderDays = days

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("GATEWAY_URL is required")
	}
	if cfg.GatewaySecret == "" {
		return nil, fmt.Errorf("GATEWAY_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
