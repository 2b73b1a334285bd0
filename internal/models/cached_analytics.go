package models

import (
	"encoding/json"
	"time"
)

// CachedAnalytics is an AI analytics payload kept in the local cache.
// The payload is opaque to this service.
type CachedAnalytics struct {
	Key      string          `json:"key" db:"cache_key"`
	Value    json.RawMessage `json:"value" db:"value"`
	StoredAt time.Time       `json:"stored_at" db:"stored_at"`
}

// IsExpired reports whether the entry is older than ttl at now
func (c *CachedAnalytics) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.StoredAt) >= ttl
}
