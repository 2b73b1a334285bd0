package repositories

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/alimgiray/reviewboard/internal/models"
)

// AnalyticsCacheRepository stores AI analytics payloads by key. Expiry is
// decided by the caller from StoredAt.
type AnalyticsCacheRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewAnalyticsCacheRepository(db *sql.DB) *AnalyticsCacheRepository {
	return &AnalyticsCacheRepository{db: db}
}

// Get returns sql.ErrNoRows when key has never been stored
func (r *AnalyticsCacheRepository) Get(key string) (*models.CachedAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT cache_key, value, stored_at FROM analytics_cache WHERE cache_key = ?`

	var (
		entry models.CachedAnalytics
		value string
	)
	if err := r.db.QueryRow(query, key).Scan(&entry.Key, &value, &entry.StoredAt); err != nil {
		return nil, err
	}
	entry.Value = json.RawMessage(value)

	return &entry, nil
}

// Put replaces the value stored under key
func (r *AnalyticsCacheRepository) Put(key string, value json.RawMessage, storedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO analytics_cache (cache_key, value, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at
	`
	_, err := r.db.Exec(query, key, string(value), storedAt)
	return err
}

// Delete removes key; deleting a missing key is not an error
func (r *AnalyticsCacheRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM analytics_cache WHERE cache_key = ?`, key)
	return err
}
