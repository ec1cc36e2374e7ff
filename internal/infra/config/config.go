package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	TelegramToken string
	DatabaseURL   string

	OpenAIAPIKey  string
	OpenAIBaseURL string // optional, for OpenAI-compatible endpoints
	OpenAIModel   string

	DiscordBotToken string
	ReviewChannelID string

	GoogleCredentialsFile string
	ArchiveSpreadsheetID  string
	ArchiveSheetName      string

	HTTPListenAddr string
	ImageDir       string
	LogLevel       string
	Environment    string
	CronSpecDigest string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.DiscordBotToken = os.Getenv("DISCORD_BOT_TOKEN")
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}
	cfg.ReviewChannelID = os.Getenv("REVIEW_CHANNEL_ID")
	if cfg.ReviewChannelID == "" {
		return nil, fmt.Errorf("REVIEW_CHANNEL_ID is not set")
	}

	cfg.GoogleCredentialsFile = os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if cfg.GoogleCredentialsFile == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_FILE is not set")
	}
	cfg.ArchiveSpreadsheetID = os.Getenv("ARCHIVE_SPREADSHEET_ID")
	if cfg.ArchiveSpreadsheetID == "" {
		return nil, fmt.Errorf("ARCHIVE_SPREADSHEET_ID is not set")
	}
	cfg.ArchiveSheetName = os.Getenv("ARCHIVE_SHEET_NAME")
	if cfg.ArchiveSheetName == "" {
		cfg.ArchiveSheetName = "Sheet1"
	}

	cfg.HTTPListenAddr = os.Getenv("HTTP_LISTEN_ADDR")
	if cfg.HTTPListenAddr == "" {
		cfg.HTTPListenAddr = ":8080"
	}

	cfg.ImageDir = os.Getenv("IMAGE_DIR")
	if cfg.ImageDir == "" {
		cfg.ImageDir = "data/images"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpecDigest = os.Getenv("CRON_SPEC_DAILY_DIGEST")
	if cfg.CronSpecDigest == "" {
		cfg.CronSpecDigest = "0 18 * * *" // Default: 18:00 daily
	}

	return cfg, nil
}
