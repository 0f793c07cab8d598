package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("SOURCE_CHANNEL", "")
	t.Setenv("DIGEST_HOUR", "")
	t.Setenv("CHECK_INTERVAL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Token)
	assert.Equal(t, "topik2prep", cfg.SourceChannel)
	assert.Equal(t, 12, cfg.DigestHour)
	assert.Equal(t, 3, cfg.CheckInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("SOURCE_CHANNEL", "korean_daily")
	t.Setenv("DIGEST_HOUR", "8")
	t.Setenv("CHECK_INTERVAL", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "korean_daily", cfg.SourceChannel)
	assert.Equal(t, 8, cfg.DigestHour)
	assert.Equal(t, 5, cfg.CheckInterval)
}

func TestLoadConfigIgnoresInvalidOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("DIGEST_HOUR", "25")
	t.Setenv("CHECK_INTERVAL", "-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.DigestHour)
	assert.Equal(t, 3, cfg.CheckInterval)
}
