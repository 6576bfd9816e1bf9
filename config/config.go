package config

import (
	"os"
)

// Config carries everything both servers need from the environment. The
// profile name (APP_ENV) selects debug behaviour the way the original
// development/testing/production split did.
type Config struct {
	Env         string
	Debug       bool
	SecretKey   string
	DatabaseURL string
	AppPort     string
	APIPort     string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	AllowedOrigins []string
}

// Load reads configuration from the environment. Callers are expected to
// have loaded a .env file already (main does, via godotenv).
func Load() Config {
	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		DatabaseURL: getEnv("DATABASE_URL", "devfolio.db"),
		AppPort:     getEnv("APP_PORT", "5000"),
		APIPort:     getEnv("API_PORT", "8000"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
	}
	cfg.Debug = cfg.Env != "production"

	if origins := os.Getenv("FRONTEND_URL"); origins != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origins)
	}
	if origins := os.Getenv("FRONTEND_URL2"); origins != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origins)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
