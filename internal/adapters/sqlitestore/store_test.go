package sqlitestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestStore creates a temporary database for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tradejournal-test-*")
	require.NoError(t, err)

	store, err := New(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}
	return store, cleanup
}

func sampleTrades() []domain.TradeRecord {
	return []domain.TradeRecord{
		{
			Symbol:      "AAPL",
			Side:        domain.Buy,
			Quantity:    100,
			Price:       decimal.RequireFromString("150.25"),
			Date:        "2024-01-02",
			Time:        "09:31",
			Description: "Bought 100 shares",
			NetPnL:      decimal.RequireFromString("120.50"),
		},
		{
			Symbol:   "TSLA",
			Side:     domain.Sell,
			Quantity: 50,
			Price:    decimal.RequireFromString("200.00"),
			Date:     "2024-01-02",
			Time:     "10:00",
			NetPnL:   decimal.RequireFromString("-30"),
		},
	}
}

func TestStore_SaveAllAndGetAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	saved, err := store.SaveAll(ctx, sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Insertion order preserved, values round-tripped.
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, domain.Buy, records[0].Side)
	assert.Equal(t, int64(100), records[0].Quantity)
	assert.True(t, records[0].Price.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, records[0].NetPnL.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "2024-01-02", records[0].Date)
	assert.Equal(t, "09:31", records[0].Time)
	assert.NotEmpty(t, records[0].ID)

	assert.Equal(t, "TSLA", records[1].Symbol)
	assert.Equal(t, domain.Sell, records[1].Side)
	assert.True(t, records[1].NetPnL.Equal(decimal.RequireFromString("-30")))
}

func TestStore_SaveAllAppends(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.SaveAll(ctx, sampleTrades())
	require.NoError(t, err)
	_, err = store.SaveAll(ctx, sampleTrades())
	require.NoError(t, err)

	// No uniqueness constraint: duplicates are the store's callers' problem.
	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestStore_SaveAllEmpty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	saved, err := store.SaveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
}

func TestStore_GetAllEmpty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	records, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestStore_ClearAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.SaveAll(ctx, sampleTrades())
	require.NoError(t, err)

	require.NoError(t, store.ClearAll(ctx))

	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
