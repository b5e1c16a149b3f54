package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort            = "8080"
	DefaultGmailDailyQuota = 100
	DefaultGenkitModel     = "googleai/gemini-2.0-flash"
)

// Config reúne as variáveis de ambiente usadas pelo servidor
type Config struct {
	Port                string
	CORSAllowedOrigins  []string
	FirebaseCredentials string
	LogLevel            string

	QuotaDBDriver   string // "postgres" ou "sqlite"
	DatabaseURL     string
	GmailDailyQuota int

	GoogleClientID     string
	GoogleClientSecret string

	GeminiAPIKey string
	GenkitModel  string

	CategoryColorsFile string
}

// Load carrega o .env (se existir) e lê a configuração do ambiente.
// Variáveis já definidas no ambiente têm prioridade sobre o arquivo.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("erro ao carregar o arquivo .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("SERVER_PORT", DefaultPort),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		QuotaDBDriver:       strings.ToLower(getEnv("QUOTA_DB_DRIVER", "postgres")),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  os.Getenv("GOOGLE_CLIENT_SECRET"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GenkitModel:         getEnv("GENKIT_MODEL", DefaultGenkitModel),
		CategoryColorsFile:  os.Getenv("CATEGORY_COLORS_FILE"),
		GmailDailyQuota:     DefaultGmailDailyQuota,
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if raw := os.Getenv("GMAIL_DAILY_QUOTA"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("GMAIL_DAILY_QUOTA inválido: %q", raw)
		}
		cfg.GmailDailyQuota = n
	}

	switch cfg.QuotaDBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("QUOTA_DB_DRIVER inválido: %q (use postgres ou sqlite)", cfg.QuotaDBDriver)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL(cfg.QuotaDBDriver)
	}

	return cfg, nil
}

// defaultDatabaseURL monta a DSN a partir das variáveis DB_* quando DATABASE_URL não foi definida
func defaultDatabaseURL(driver string) string {
	if driver == "sqlite" {
		return getEnv("DB_NAME", "wedding-planner.db")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "wedding_planner"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
