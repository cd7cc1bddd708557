package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faraaway90/telegram/internal/domain"
	"github.com/faraaway90/telegram/internal/engine"
	"github.com/faraaway90/telegram/internal/ledger"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()

	led, err := ledger.Open(ledger.NewMemoryStore())
	require.NoError(t, err)

	eng := engine.New(engine.Params{
		Ledger: led,
		Catalog: map[string]domain.TaskDefinition{
			"watch_video": {
				Key:         "watch_video",
				Title:       "Watch Video",
				Reward:      decimal.RequireFromString("0.50"),
				WaitSeconds: 10,
			},
		},
		DailyTaskLimit: 5,
		ReferralBonus:  decimal.RequireFromString("0.10"),
		MinWithdrawals: map[string]decimal.Decimal{
			"paypal": decimal.RequireFromString("5.00"),
		},
	})

	eng.EnsureAccount(1, "Alice", "alice", 0)
	_, err = eng.StartTask(1, "watch_video")
	require.NoError(t, err)

	return eng
}

func TestHealthEndpoint(t *testing.T) {
	eng := testEngine(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handleHealth(eng)(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 1, body.Users)
	assert.Equal(t, 1, body.ActiveTasks)
	assert.Equal(t, 0, body.PendingWithdrawals)
}

func TestStatsEndpoint(t *testing.T) {
	eng := testEngine(t)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	handleStats(eng)(rec, req)

	assert.Equal(t, 200, rec.Code)

	var stats engine.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalAccounts)
	assert.Equal(t, 1, stats.ActiveTimers)
	assert.True(t, stats.TotalBalance.IsZero())
}
