package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faraaway90/telegram/internal/domain"
)

func sampleAccount() domain.Account {
	return domain.Account{
		ID:             1,
		FirstName:      "Alice",
		Username:       "alice",
		Balance:        decimal.RequireFromString("3.50"),
		TotalEarned:    decimal.RequireFromString("12.00"),
		TasksCompleted: 7,
		Referrals:      2,
		CompletedToday: map[string]bool{"watch_video": true},
		LastResetDate:  "2025-03-10",
		JoinedAt:       time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)

	led, err := Open(store)
	require.NoError(t, err)

	started := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	led.PutAccount(sampleAccount())
	led.SetTimer(1, "visit_site", started)
	led.AppendWithdrawal(domain.WithdrawalRequest{
		ID:          "req-1",
		AccountID:   1,
		Username:    "alice",
		Method:      "paypal",
		Destination: "alice@example.com",
		Amount:      decimal.RequireFromString("5.00"),
		RequestedAt: started,
		Status:      domain.WithdrawalPending,
	})
	require.NoError(t, led.Persist())

	// Reopen from disk and verify everything survived.
	reloaded, err := Open(NewFileStore(path))
	require.NoError(t, err)

	acc, ok := reloaded.Account(1)
	require.True(t, ok)
	assert.Equal(t, "alice", acc.Username)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("3.50")))
	assert.True(t, acc.HasCompletedToday("watch_video"))
	assert.Equal(t, "2025-03-10", acc.LastResetDate)

	startedAt, ok := reloaded.Timer(1, "visit_site")
	require.True(t, ok)
	assert.True(t, startedAt.Equal(started))

	withdrawals := reloaded.Withdrawals()
	require.Len(t, withdrawals, 1)
	assert.Equal(t, "req-1", withdrawals[0].ID)
	assert.Equal(t, domain.WithdrawalPending, withdrawals[0].Status)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	led, err := Open(store)
	require.NoError(t, err)
	assert.Zero(t, led.AccountCount())
	assert.Empty(t, led.Withdrawals())
	assert.Zero(t, led.TimerCount())
}

func TestFileStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(NewSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestAccountCopySemantics(t *testing.T) {
	led, err := Open(NewMemoryStore())
	require.NoError(t, err)

	led.PutAccount(sampleAccount())

	acc, ok := led.Account(1)
	require.True(t, ok)

	// Mutating the returned copy must not leak into the ledger.
	acc.Balance = decimal.RequireFromString("999")
	acc.CompletedToday["visit_site"] = true

	fresh, ok := led.Account(1)
	require.True(t, ok)
	assert.True(t, fresh.Balance.Equal(decimal.RequireFromString("3.50")))
	assert.False(t, fresh.HasCompletedToday("visit_site"))
}

func TestTimerLifecycle(t *testing.T) {
	led, err := Open(NewMemoryStore())
	require.NoError(t, err)

	now := time.Now()
	led.SetTimer(1, "a", now)
	led.SetTimer(1, "b", now)
	led.SetTimer(2, "a", now)
	assert.Equal(t, 3, led.TimerCount())

	led.DeleteTimer(1, "a")
	assert.Equal(t, 2, led.TimerCount())
	_, ok := led.Timer(1, "a")
	assert.False(t, ok)

	timers := led.TimersFor(1)
	require.Len(t, timers, 1)
	_, ok = timers["b"]
	assert.True(t, ok)

	// Deleting the last timer for an account clears its bucket.
	led.DeleteTimer(1, "b")
	assert.Empty(t, led.TimersFor(1))

	// Deleting a missing timer is a no-op.
	led.DeleteTimer(99, "a")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	led, err := Open(NewMemoryStore())
	require.NoError(t, err)
	led.PutAccount(sampleAccount())

	snap := led.Snapshot()
	snap.Accounts[1].Balance = decimal.RequireFromString("999")
	snap.Accounts[1].CompletedToday["visit_site"] = true

	acc, ok := led.Account(1)
	require.True(t, ok)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("3.50")))
	assert.False(t, acc.HasCompletedToday("visit_site"))
}
