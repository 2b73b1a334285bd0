package services

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/alimgiray/reviewboard/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsCacheTTL(t *testing.T) {
	store := repositories.NewAnalyticsCacheRepository(setupTestDB(t))
	service := NewAnalyticsCacheService(store, 24*time.Hour)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	_, ok, err := service.Get("pr-summaries")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is a miss, not an error")

	_, err = service.Put("pr-summaries", json.RawMessage(`{"42":"Adds a connector"}`))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		elapsed time.Duration
		hit     bool
	}{
		{"fresh", time.Minute, true},
		{"just before expiry", 24*time.Hour - time.Second, true},
		{"at expiry", 24 * time.Hour, false},
		{"long expired", 72 * time.Hour, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service.now = func() time.Time { return now.Add(tc.elapsed) }

			entry, ok, err := service.Get("pr-summaries")

			require.NoError(t, err)
			assert.Equal(t, tc.hit, ok)
			if tc.hit {
				assert.JSONEq(t, `{"42":"Adds a connector"}`, string(entry.Value))
			}
		})
	}
}

func TestAnalyticsCachePutValidation(t *testing.T) {
	service := NewAnalyticsCacheService(repositories.NewAnalyticsCacheRepository(setupTestDB(t)), time.Hour)

	_, err := service.Put(" ", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidAnalyticsKey)

	_, err = service.Put("categories", json.RawMessage(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidAnalyticsPayload)
}

func TestAnalyticsCacheGetPurgesExpiredEntry(t *testing.T) {
	store := repositories.NewAnalyticsCacheRepository(setupTestDB(t))
	service := NewAnalyticsCacheService(store, time.Hour)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }
	_, err := service.Put("weekly-summary", json.RawMessage(`{"summary":"quiet"}`))
	require.NoError(t, err)

	service.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, ok, err := service.Get("weekly-summary")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get("weekly-summary")
	assert.ErrorIs(t, err, sql.ErrNoRows, "expired entry is removed from the store")
}

func TestAnalyticsCacheKeysAreTrimmed(t *testing.T) {
	service := NewAnalyticsCacheService(repositories.NewAnalyticsCacheRepository(setupTestDB(t)), time.Hour)

	entry, err := service.Put(" categories ", json.RawMessage(`["bug","style"]`))
	require.NoError(t, err)
	assert.Equal(t, "categories", entry.Key)

	for _, key := range []string{" categories", "categories", "categories\t"} {
		t.Run(key, func(t *testing.T) {
			_, ok, err := service.Get(key)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	_, _, err = service.Get("  ")
	assert.ErrorIs(t, err, ErrInvalidAnalyticsKey)
}
