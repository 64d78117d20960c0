package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT", "OVERFETCH_MULTIPLIER",
		"SEARCH_BASE_URL", "SMTP_PORT", "SMTP_USERNAME", "SMTP_FROM",
		"IMAGE_HEAD_TIMEOUT", "IMAGE_GET_TIMEOUT", "IMAGE_MAX_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2, cfg.OverfetchMultiplier)
	assert.Equal(t, DefaultSearchBaseURL, cfg.Search.BaseURL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Download.HeadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Download.GetTimeout)
	assert.Equal(t, int64(20<<20), cfg.Download.MaxBytes)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("GOOGLE_CX", "cx")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USERNAME", "bot@example.com")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("CUSTOM_USER_AGENT", "ImageMailer/1.0")
	t.Setenv("IMAGE_HEAD_TIMEOUT", "2s")
	t.Setenv("OVERFETCH_MULTIPLIER", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "key", cfg.Search.APIKey)
	assert.Equal(t, "cx", cfg.Search.EngineID)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "bot@example.com", cfg.SMTP.From, "отправитель по умолчанию — логин SMTP")
	assert.Equal(t, "ImageMailer/1.0", cfg.Download.UserAgent)
	assert.Equal(t, 2*time.Second, cfg.Download.HeadTimeout)
	assert.Equal(t, 3, cfg.OverfetchMultiplier)
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}
