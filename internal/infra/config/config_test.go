package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/tutor_test")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DISCORD_BOT_TOKEN", "discord-token")
	t.Setenv("REVIEW_CHANNEL_ID", "123456")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "creds.json")
	t.Setenv("ARCHIVE_SPREADSHEET_ID", "sheet-id")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("ARCHIVE_SHEET_NAME", "")
	t.Setenv("HTTP_LISTEN_ADDR", "")
	t.Setenv("IMAGE_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CRON_SPEC_DAILY_DIGEST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "Sheet1", cfg.ArchiveSheetName)
	assert.Equal(t, ":8080", cfg.HTTPListenAddr)
	assert.Equal(t, "data/images", cfg.ImageDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0 18 * * *", cfg.CronSpecDigest)
}

func TestLoadRequiresCredentials(t *testing.T) {
	required := []string{
		"TELEGRAM_TOKEN",
		"DATABASE_URL",
		"OPENAI_API_KEY",
		"DISCORD_BOT_TOKEN",
		"REVIEW_CHANNEL_ID",
		"GOOGLE_CREDENTIALS_FILE",
		"ARCHIVE_SPREADSHEET_ID",
	}

	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadNormalizesLogLevelAndEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
}
