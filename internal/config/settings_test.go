package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSettings = `{
	"currency": "$",
	"daily_task_limit": 5,
	"referral_bonus": "0.10",
	"tasks": [
		{"key": "watch_video", "title": "Watch Video", "reward": "0.50", "wait_seconds": 30},
		{"key": "visit_site", "title": "Visit Website", "reward": "0.25", "wait_seconds": 15, "link": "https://example.com"}
	],
	"payout_methods": {
		"paypal": {"name": "PayPal", "min": "5.00", "format": "email@example.com"},
		"bitcoin": {"name": "Bitcoin", "min": "10.00", "enabled": false}
	}
}`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	s, err := LoadSettings(writeSettings(t, validSettings))
	require.NoError(t, err)

	assert.Equal(t, "$", s.Currency)
	assert.Equal(t, 5, s.DailyTaskLimit)
	assert.True(t, s.ReferralBonus.Equal(decimal.RequireFromString("0.10")))
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, "watch_video", s.Tasks[0].Key)
	assert.Equal(t, 30, s.Tasks[0].WaitSeconds)

	catalog := s.Catalog()
	require.Contains(t, catalog, "visit_site")
	assert.Equal(t, "https://example.com", catalog["visit_site"].Link)

	// Disabled methods are excluded from the minimum table.
	mins := s.MinWithdrawals()
	require.Contains(t, mins, "paypal")
	assert.NotContains(t, mins, "bitcoin")
	assert.True(t, mins["paypal"].Equal(decimal.RequireFromString("5.00")))
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSettingsValidation(t *testing.T) {
	base := func() *Settings {
		s, err := LoadSettings(writeSettings(t, validSettings))
		require.NoError(t, err)
		return s
	}

	t.Run("currency defaults", func(t *testing.T) {
		s := base()
		s.Currency = ""
		require.NoError(t, s.Validate())
		assert.Equal(t, "$", s.Currency)
	})

	t.Run("zero daily limit rejected", func(t *testing.T) {
		s := base()
		s.DailyTaskLimit = 0
		assert.Error(t, s.Validate())
	})

	t.Run("negative referral bonus rejected", func(t *testing.T) {
		s := base()
		s.ReferralBonus = decimal.RequireFromString("-1")
		assert.Error(t, s.Validate())
	})

	t.Run("no tasks rejected", func(t *testing.T) {
		s := base()
		s.Tasks = nil
		assert.Error(t, s.Validate())
	})

	t.Run("duplicate task key rejected", func(t *testing.T) {
		s := base()
		s.Tasks = append(s.Tasks, s.Tasks[0])
		assert.Error(t, s.Validate())
	})

	t.Run("empty task key rejected", func(t *testing.T) {
		s := base()
		s.Tasks[0].Key = ""
		assert.Error(t, s.Validate())
	})

	t.Run("non-positive reward rejected", func(t *testing.T) {
		s := base()
		s.Tasks[0].Reward = decimal.Zero
		assert.Error(t, s.Validate())
	})

	t.Run("negative wait rejected", func(t *testing.T) {
		s := base()
		s.Tasks[0].WaitSeconds = -1
		assert.Error(t, s.Validate())
	})

	t.Run("non-positive payout minimum rejected", func(t *testing.T) {
		s := base()
		m := s.PayoutMethods["paypal"]
		m.Min = decimal.Zero
		s.PayoutMethods["paypal"] = m
		assert.Error(t, s.Validate())
	})
}

func TestConfigLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_IDS", "10,20")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "data.json", cfg.DataPath)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []int64{10, 20}, cfg.AdminIDs)

	assert.True(t, cfg.IsAdmin(10))
	assert.True(t, cfg.IsAdmin(20))
	assert.False(t, cfg.IsAdmin(30))
}
